package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internalconfig "github.com/smykla-skalski/nanobench/internal/config"
	"github.com/smykla-skalski/nanobench/pkg/config"
)

var _ = Describe("Validate", func() {
	It("should accept the defaults", func() {
		Expect(internalconfig.Validate(internalconfig.DefaultConfig())).To(Succeed())
	})

	It("should accept the floor itself", func() {
		cfg := internalconfig.DefaultConfig()
		cfg.Runs = internalconfig.MinRunsFloor

		Expect(internalconfig.Validate(cfg)).To(Succeed())
	})

	It("should reject runs below the floor", func() {
		cfg := internalconfig.DefaultConfig()
		cfg.Runs = 1

		err := internalconfig.Validate(cfg)
		Expect(err).To(MatchError(internalconfig.ErrRunsTooLow))
		Expect(err.Error()).To(ContainSubstring("got 1"))
	})

	It("should reject a negative duration", func() {
		cfg := internalconfig.DefaultConfig()
		cfg.Duration = config.Duration(-time.Second)

		Expect(internalconfig.Validate(cfg)).To(MatchError(internalconfig.ErrNegativeDuration))
	})

	It("should accept a zero duration", func() {
		cfg := internalconfig.DefaultConfig()
		cfg.Duration = 0

		Expect(internalconfig.Validate(cfg)).To(Succeed())
	})
})
