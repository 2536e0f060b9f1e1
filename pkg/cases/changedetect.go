package cases

import (
	"fmt"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/models"
)

// attributeLabels gives each tracked attribute its operator-facing label,
// ported verbatim from case_service.py's ATTRIBUTE_LABELS.
var attributeLabels = map[models.TrackedAttribute]string{
	models.AttributeSpeed:         "速率",
	models.AttributeDuplex:        "雙工",
	models.AttributeLinkStatus:    "連線狀態",
	models.AttributePingReachable: "Ping",
	models.AttributeInterfaceName: "介面",
	models.AttributeVlanID:        "VLAN",
	models.AttributeAclRules:      "ACL",
}

// ChangeTag reports whether one tracked attribute has changed across a
// MAC's observation history.
type ChangeTag struct {
	Attribute models.TrackedAttribute `json:"attribute"`
	Label     string                  `json:"label"`
	HasChange bool                    `json:"has_change"`
}

// detectChange ports case_service.py::_detect_change's five-rule decision
// table over a chronologically-ordered value series (nil standing in for
// Python's None):
//  1. no values at all -> no change
//  2. every value nil -> no change
//  3. exactly one distinct non-nil value, and the latest sample still
//     carries it -> stable, no change
//  4. exactly one distinct non-nil value, but the latest sample is nil ->
//     changed (device went offline / is mid-swap)
//  5. more than one distinct non-nil value -> changed
func detectChange(values []any) bool {
	if len(values) == 0 {
		return false
	}

	distinct := make(map[string]bool)
	anyNonNil := false
	for _, v := range values {
		if v == nil {
			continue
		}
		anyNonNil = true
		distinct[fmt.Sprint(v)] = true
	}
	if !anyNonNil {
		return false
	}
	if len(distinct) > 1 {
		return true
	}
	return values[len(values)-1] == nil
}

// attributeValues extracts one tracked attribute's value series, in the
// same chronological order as records, boxing each typed pointer field
// into `any` (nil preserved) so detectChange can treat every attribute
// uniformly.
func attributeValues(attr models.TrackedAttribute, records []models.ClientRecord) []any {
	values := make([]any, len(records))
	for i, r := range records {
		switch attr {
		case models.AttributeSpeed:
			values[i] = derefAny(r.Speed)
		case models.AttributeDuplex:
			values[i] = derefAny(r.Duplex)
		case models.AttributeLinkStatus:
			values[i] = derefAny(r.LinkStatus)
		case models.AttributePingReachable:
			values[i] = derefAny(r.PingReachable)
		case models.AttributeInterfaceName:
			values[i] = derefAny(r.InterfaceName)
		case models.AttributeVlanID:
			values[i] = derefAny(r.VlanID)
		case models.AttributeAclRules:
			values[i] = derefAny(r.AclPasses)
		}
	}
	return values
}

// derefAny boxes a typed pointer into `any`, preserving a true nil (not a
// typed-nil interface) so detectChange's `v == nil` check behaves.
func derefAny[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func computeChangeTags(records []models.ClientRecord) []ChangeTag {
	tags := make([]ChangeTag, 0, len(models.TrackedAttributes))
	for _, attr := range models.TrackedAttributes {
		tags = append(tags, ChangeTag{
			Attribute: attr,
			Label:     attributeLabels[attr],
			HasChange: detectChange(attributeValues(attr, records)),
		})
	}
	return tags
}
