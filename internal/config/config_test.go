package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ctrlsim/internal/dynamo"
	"github.com/san-kum/ctrlsim/internal/pidloop"
	"github.com/san-kum/ctrlsim/internal/stepresp"
)

var _ = Describe("Config", func() {
	Describe("DefaultConfig", func() {
		It("matches the engine defaults", func() {
			cfg := DefaultConfig()
			Expect(cfg.Validate()).To(Succeed())

			loop, err := cfg.PIDLoop()
			Expect(err).NotTo(HaveOccurred())
			Expect(loop).To(Equal(pidloop.DefaultConfig()))

			step, err := cfg.StepResp()
			Expect(err).NotTo(HaveOccurred())
			Expect(step).To(Equal(stepresp.DefaultConfig()))
		})
	})

	Describe("Load and Save", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "ctrlsim-config")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("round-trips a configuration", func() {
			path := filepath.Join(dir, "run.yaml")
			cfg := GetPreset("walking_pid")
			Expect(Save(path, cfg)).To(Succeed())

			loaded, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("fills omitted fields from the defaults", func() {
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("system:\n  damping: 4\n"), 0644)).To(Succeed())

			cfg, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.System.Damping).To(Equal(4.0))
			Expect(cfg.System.Stiffness).To(Equal(DefaultStiffness))
			Expect(cfg.Walker.Target).To(Equal(DefaultTarget))
		})

		It("layers a file over a preset", func() {
			path := filepath.Join(dir, "stiff.yaml")
			Expect(os.WriteFile(path, []byte("system:\n  stiffness: 30\n"), 0644)).To(Succeed())

			base := GetPreset("practice")
			cfg, err := LoadInto(path, base)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.System.Damping).To(Equal(4.0))
			Expect(cfg.System.Stiffness).To(Equal(30.0))
			Expect(base.System.Stiffness).To(Equal(20.0))
		})

		It("treats an empty file as no overrides", func() {
			path := filepath.Join(dir, "empty.yaml")
			Expect(os.WriteFile(path, nil, 0644)).To(Succeed())

			cfg, err := Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(DefaultConfig()))
		})

		It("rejects unknown keys", func() {
			path := filepath.Join(dir, "typo.yaml")
			Expect(os.WriteFile(path, []byte("walker:\n  kpp: 1\n"), 0644)).To(Succeed())

			_, err := Load(path)
			Expect(err).To(HaveOccurred())
		})

		It("reports a missing file", func() {
			_, err := Load(filepath.Join(dir, "missing.yaml"))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})
	})

	Describe("Presets", func() {
		It("lists names in order", func() {
			names := ListPresets()
			Expect(names).To(ContainElements("walking", "walking_pid", "msd", "practice", "overdamped", "critical"))
			Expect(sort.StringsAreSorted(names)).To(BeTrue())
		})

		It("keeps every preset valid", func() {
			for _, name := range ListPresets() {
				Expect(GetPreset(name).Validate()).To(Succeed(), name)
			}
		})

		It("carries the reference walking constants", func() {
			w := GetPreset("walking").Walker
			Expect(w.Target).To(Equal(50.0))
			Expect(w.Start).To(Equal(0.0))
			Expect(w.Kp).To(Equal(0.1))
			Expect(w.Dt).To(Equal(0.05))
			Expect(w.Duration).To(Equal(40.0))
		})

		It("classifies the damping presets", func() {
			classes := map[string]stepresp.Class{
				"msd":        stepresp.Underdamped,
				"practice":   stepresp.Underdamped,
				"overdamped": stepresp.Overdamped,
				"critical":   stepresp.CriticallyDamped,
			}
			for name, class := range classes {
				step, err := GetPreset(name).StepResp()
				Expect(err).NotTo(HaveOccurred())
				Expect(stepresp.ModalOf(step.Params).Class).To(Equal(class), name)
			}
		})

		It("hands out copies", func() {
			GetPreset("msd").System.Mass = 99
			Expect(GetPreset("msd").System.Mass).To(Equal(1.0))
		})

		It("names the section each preset tunes", func() {
			Expect(PresetSection("walking")).To(Equal("walker"))
			Expect(PresetSection("critical")).To(Equal("system"))
			Expect(PresetSection("nonexistent")).To(BeEmpty())
		})

		It("returns nil for unknown names", func() {
			Expect(GetPreset("nonexistent")).To(BeNil())
		})
	})

	Describe("Validate", func() {
		It("collects violations from both sections", func() {
			cfg := DefaultConfig()
			cfg.Walker.Dt = 0
			cfg.System.Mass = -1

			err := cfg.Validate()
			Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
			Expect(len(dynamo.Violations(err))).To(BeNumerically(">=", 2))
		})

		It("rejects unknown method and seed names", func() {
			cfg := DefaultConfig()
			cfg.System.Method = "bogus"
			_, err := cfg.StepResp()
			Expect(errors.Is(err, dynamo.ErrUnknownMethod)).To(BeTrue())

			cfg.Walker.DerivativeSeed = "later"
			_, err = cfg.PIDLoop()
			Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
		})
	})
})
