package core_test

import (
	"fmt"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/toejough/staticmock/internal/core"
)

// TestInstall_ReleasedWhenTestCompletes verifies that an installed mock is
// retrievable during the test and unregistered by the test's cleanup.
func TestInstall_ReleasedWhenTestCompletes(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type ledMock struct{ lit bool }

	var installed *ledMock

	t.Run("subtest", func(t *testing.T) {
		g := NewWithT(t)
		installed = core.Install(t, &ledMock{lit: true})

		g.Expect(core.Instance[ledMock]()).To(BeIdenticalTo(installed))
		g.Expect(core.MustInstance[ledMock]()).To(BeIdenticalTo(installed))
		g.Expect(core.Registered[ledMock]()).To(BeTrue())
	})

	g.Expect(installed).NotTo(BeNil())
	g.Expect(core.Registered[ledMock]()).To(BeFalse())

	_, err := core.Instance[ledMock]()
	g.Expect(err).To(MatchError(core.ErrNotRegistered))
}

// TestInstall_ReplacementSurvivesEarlierCleanup verifies that a mock installed
// by an outer test and replaced by a later one is not cleared when only the
// superseded registration is released.
func TestInstall_ReplacementSurvivesEarlierCleanup(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type uartMock struct{ baud int }

	registry := core.NewRegistry()
	reporter := &fakeReporter{}

	first := core.InstallIn(reporter, registry, &uartMock{baud: 9600})
	second := &uartMock{baud: 115200}
	g.Expect(core.RegisterIn(registry, second)).To(Succeed())

	reporter.runCleanups()

	g.Expect(core.InstanceIn[uartMock](registry)).To(BeIdenticalTo(second))
	g.Expect(core.UnregisterIn(registry, first)).To(BeFalse())
}

// TestInstallIn_RejectedDuplicateFailsTest verifies that installing a second
// instance under the reject policy fails the test and registers no cleanup.
func TestInstallIn_RejectedDuplicateFailsTest(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type adcMock struct{ channel int }

	registry := core.NewRegistry(core.WithRejectDuplicates())
	first := &adcMock{channel: 1}
	g.Expect(core.RegisterIn(registry, first)).To(Succeed())

	reporter := &fakeReporter{}
	core.InstallIn(reporter, registry, &adcMock{channel: 2})

	g.Expect(reporter.fatals).To(HaveLen(1))
	g.Expect(reporter.fatals[0]).To(ContainSubstring("already registered"))
	g.Expect(reporter.fatals[0]).To(ContainSubstring("adcMock"))
	g.Expect(reporter.cleanups).To(BeEmpty())
	g.Expect(core.InstanceIn[adcMock](registry)).To(BeIdenticalTo(first))
}

// TestRegister_DefaultRegistry verifies the explicit register and unregister
// calls against the default registry.
func TestRegister_DefaultRegistry(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type spiMock struct{ mode int }

	mock := &spiMock{mode: 3}

	g.Expect(core.Register(mock)).To(Succeed())
	g.Expect(core.Instance[spiMock]()).To(BeIdenticalTo(mock))
	g.Expect(core.Unregister(mock)).To(BeTrue())
	g.Expect(core.Unregister(mock)).To(BeFalse())
	g.Expect(core.Registered[spiMock]()).To(BeFalse())
}

type fakeReporter struct {
	fatals   []string
	cleanups []func()
}

func (r *fakeReporter) Cleanup(cleanupFunc func()) {
	r.cleanups = append(r.cleanups, cleanupFunc)
}

func (r *fakeReporter) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *fakeReporter) Helper() {}

func (r *fakeReporter) runCleanups() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}
