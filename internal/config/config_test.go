package config

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var (
		tempDir    string
		configFile string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test")
		Expect(err).NotTo(HaveOccurred())
		configFile = filepath.Join(tempDir, "config.yaml")
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	Describe("Load", func() {
		Context("when the file exists with full content", func() {
			BeforeEach(func() {
				valid := `
server:
  port: "9090"
database:
  host: "dbhost"
  port: 5433
  database: "maint"
thresholds:
  transceiver_tx_power_min: -8
  transceiver_tx_power_max: 2
case_engine:
  stable_window_seconds: 120
retention:
  grace_days: 14
fetch_concurrency: 4
`
				Expect(os.WriteFile(configFile, []byte(valid), 0644)).To(Succeed())
			})

			It("loads values from the file over defaults", func() {
				cfg, err := Load(configFile)
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Server.Port).To(Equal("9090"))
				Expect(cfg.Database.Host).To(Equal("dbhost"))
				Expect(cfg.Database.Port).To(Equal(5433))
				Expect(cfg.Thresholds.TransceiverTxPowerMin).To(Equal(-8.0))
				Expect(cfg.Thresholds.TransceiverTxPowerMax).To(Equal(2.0))
				Expect(cfg.CaseEngine.StableWindow()).To(Equal(120 * time.Second))
				Expect(cfg.Retention.Grace()).To(Equal(14 * 24 * time.Hour))
				Expect(cfg.FetchConcurrency).To(Equal(4))
			})

			It("keeps process defaults for fields absent from the file", func() {
				cfg, err := Load(configFile)
				Expect(err).NotTo(HaveOccurred())

				Expect(cfg.Thresholds.TransceiverVoltageMin).To(Equal(3.0))
				Expect(cfg.Jobs).NotTo(BeEmpty())
				Expect(cfg.Retention.SweepIntervalMinutes).To(Equal(60))
			})
		})

		Context("when the file does not exist", func() {
			It("returns pure process defaults without error", func() {
				cfg, err := Load(filepath.Join(tempDir, "missing.yaml"))
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Server.Port).To(Equal("8080"))
			})
		})

		Context("when DB secrets are set via environment", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(configFile, []byte("server:\n  port: \"8080\"\n"), 0644)).To(Succeed())
				os.Setenv("DB_PASSWORD", "s3cr3t")
			})
			AfterEach(func() {
				os.Unsetenv("DB_PASSWORD")
			})

			It("overrides the password from the environment", func() {
				cfg, err := Load(configFile)
				Expect(err).NotTo(HaveOccurred())
				Expect(cfg.Database.Password).To(Equal("s3cr3t"))
			})
		})
	})

	Describe("Watch", func() {
		It("invokes the callback with a reloaded config on write", func() {
			Expect(os.WriteFile(configFile, []byte("server:\n  port: \"8080\"\n"), 0644)).To(Succeed())

			received := make(chan *Config, 1)
			watcher, err := Watch(configFile, func(c *Config) {
				select {
				case received <- c:
				default:
				}
			})
			Expect(err).NotTo(HaveOccurred())
			defer watcher.Close()

			Expect(os.WriteFile(configFile, []byte("server:\n  port: \"9999\"\n"), 0644)).To(Succeed())

			Eventually(received, "2s").Should(Receive(WithTransform(func(c *Config) string {
				return c.Server.Port
			}, Equal("9999"))))
		})
	})
})
