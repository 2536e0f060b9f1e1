package fetch

// DeviceTarget is one active device a per-device fetcher polls, or one
// entry in a bulk fetcher's address list.
type DeviceTarget struct {
	Hostname  string
	IP        string
	VendorOS  string
}
