package vcs

import (
	"errors"
	"testing"
)

// fakeVCS is a hand-rolled stand-in for the narrow VersionControlSystem
// interface (spec §4.F); the registry tests below only need to observe which
// backend got selected/returned, not assert on call sequences, so a plain
// struct is simpler than a golang/mock-generated one here.
type fakeVCS struct {
	name       string
	repository bool
}

func (f *fakeVCS) Name() string       { return f.name }
func (f *fakeVCS) IsRepository() bool { return f.repository }
func (f *fakeVCS) Status() (Status, error) {
	return Status{}, nil
}
func (f *fakeVCS) Stage(paths []string) error               { return nil }
func (f *fakeVCS) Commit(message string) (string, error)    { return "deadbeef", nil }
func (f *fakeVCS) Tag(name, message string, sign bool) error { return nil }
func (f *fakeVCS) LatestTag(glob string) (string, bool, error) {
	return "", false, nil
}

func newRegistry() *VCSRegistry {
	return &VCSRegistry{systems: make(map[string]VersionControlSystem)}
}

func TestVCSRegistry_RegisterVCS(t *testing.T) {
	r := newRegistry()
	r.RegisterVCS(&fakeVCS{name: "mock"})

	if len(r.systems) != 1 {
		t.Errorf("expected 1 VCS registered, got %d", len(r.systems))
	}
	if r.systems["mock"] == nil {
		t.Error("VCS not registered under its own name")
	}
}

func TestVCSRegistry_GetActiveVCS(t *testing.T) {
	r := newRegistry()
	v1 := &fakeVCS{name: "vcs1", repository: false}
	v2 := &fakeVCS{name: "vcs2", repository: true}
	r.systems["vcs1"] = v1
	r.systems["vcs2"] = v2

	if active := r.GetActiveVCS(); active != v2 {
		t.Error("expected vcs2 to be the active VCS")
	}
}

func TestVCSRegistry_GetActiveVCS_NoActiveVCS(t *testing.T) {
	r := newRegistry()
	r.systems["mock"] = &fakeVCS{name: "mock", repository: false}

	if active := r.GetActiveVCS(); active != nil {
		t.Error("expected no active VCS")
	}
}

func TestVCSRegistry_GetVCS(t *testing.T) {
	r := newRegistry()
	v := &fakeVCS{name: "mock"}
	r.systems["mock"] = v

	if got := r.GetVCS("mock"); got != v {
		t.Error("expected to retrieve the registered VCS")
	}
	if got := r.GetVCS("nonexistent"); got != nil {
		t.Error("expected nil for a non-existent VCS")
	}
}

func TestVCSRegistry_UnregisterVCS(t *testing.T) {
	r := newRegistry()
	r.systems["mock"] = &fakeVCS{name: "mock"}
	r.UnregisterVCS("mock")

	if len(r.systems) != 0 {
		t.Errorf("expected 0 VCS registered after unregistering, got %d", len(r.systems))
	}
}

func TestVCSRegistry_ListVCS(t *testing.T) {
	r := newRegistry()
	r.systems["vcs1"] = &fakeVCS{name: "vcs1"}
	r.systems["vcs2"] = &fakeVCS{name: "vcs2"}

	names := r.ListVCS()
	if len(names) != 2 {
		t.Errorf("expected 2 VCS names, got %d", len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	if !seen["vcs1"] || !seen["vcs2"] {
		t.Error("expected both vcs1 and vcs2 in the list")
	}
}

func TestFakeVCS_Operations(t *testing.T) {
	v := &fakeVCS{name: "mock-git", repository: true}

	if v.Name() != "mock-git" {
		t.Errorf("expected name 'mock-git', got %q", v.Name())
	}
	if !v.IsRepository() {
		t.Error("expected IsRepository to return true")
	}

	status, err := v.Status()
	if err != nil || status.Dirty {
		t.Errorf("expected clean status with no error, got %+v, %v", status, err)
	}

	if err := v.Stage([]string{"README.md"}); err != nil {
		t.Errorf("expected no error staging, got %v", err)
	}

	commitID, err := v.Commit("release")
	if err != nil || commitID == "" {
		t.Errorf("expected a commit id with no error, got %q, %v", commitID, err)
	}

	if err := v.Tag("v1.0.0", "release", false); err != nil {
		t.Errorf("expected no error tagging, got %v", err)
	}

	_, ok, err := v.LatestTag("v*")
	if err != nil || ok {
		t.Errorf("expected no latest tag, got ok=%v err=%v", ok, err)
	}
}

// erroringVCS exercises the interface's error-returning paths.
type erroringVCS struct {
	fakeVCS
	err error
}

func (e *erroringVCS) Stage(paths []string) error               { return e.err }
func (e *erroringVCS) Commit(message string) (string, error)    { return "", e.err }
func (e *erroringVCS) Tag(name, message string, sign bool) error { return e.err }

func TestErroringVCS_PropagatesErrors(t *testing.T) {
	wantErr := errors.New("vcs backend unavailable")
	v := &erroringVCS{fakeVCS: fakeVCS{name: "broken"}, err: wantErr}

	if err := v.Stage(nil); err != wantErr {
		t.Errorf("expected Stage to propagate the error, got %v", err)
	}
	if _, err := v.Commit("msg"); err != wantErr {
		t.Errorf("expected Commit to propagate the error, got %v", err)
	}
	if err := v.Tag("v1", "msg", false); err != wantErr {
		t.Errorf("expected Tag to propagate the error, got %v", err)
	}
}

func TestGlobalFunctions_WithFake(t *testing.T) {
	original := registry
	defer func() { registry = original }()

	registry = newRegistry()
	v := &fakeVCS{name: "mock", repository: true}

	RegisterVCS(v)

	if got := GetVCS("mock"); got != v {
		t.Error("expected to retrieve the fake VCS using the global function")
	}
	if got := GetActiveVCS(); got != v {
		t.Error("expected the fake VCS to be active using the global function")
	}
	if names := ListVCS(); len(names) != 1 || names[0] != "mock" {
		t.Error("expected one VCS named 'mock' in the global list")
	}

	UnregisterVCS("mock")
	if got := GetVCS("mock"); got != nil {
		t.Error("expected the VCS to be unregistered using the global function")
	}
}
