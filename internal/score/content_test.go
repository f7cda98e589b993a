package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/pkg/types"
)

func scoreContentWith(t *testing.T, sig *bundle.ContentSignals) State {
	t.Helper()
	e := newTestEngine()
	st := NewState(sig != nil)
	require.NoError(t, e.scoreContentSafety(Input{Bundle: &bundle.Bundle{}, Signals: sig}, st))
	return st
}

func TestScoreContentSafety_NoSignals(t *testing.T) {
	st := scoreContentWith(t, nil)
	_, ok := st[types.ContentSafety]
	assert.False(t, ok, "Content_Safety must not be scored without signals")
}

func TestScoreContentSafety_CleanPage(t *testing.T) {
	st := scoreContentWith(t, &bundle.ContentSignals{})
	assert.Equal(t, 100, st[types.ContentSafety])
}

func TestScoreContentSafety(t *testing.T) {
	tests := []struct {
		name string
		sig  bundle.ContentSignals
		want int
	}{
		{"invisible characters", bundle.ContentSignals{InvisibleChars: 1}, 75},
		{"RTL overrides", bundle.ContentSignals{RTLOverrides: 2}, 80},
		{"homoglyphs over threshold", bundle.ContentSignals{HomoglyphScore: 51}, 85},
		{"homoglyphs at threshold", bundle.ContentSignals{HomoglyphScore: 50}, 100},
		{"external form action", bundle.ContentSignals{FormActionExternal: true}, 80},
		{"password with autocomplete off", bundle.ContentSignals{PasswordFields: 1, AutocompleteOff: true}, 90},
		{"autocomplete off without password fields", bundle.ContentSignals{AutocompleteOff: true}, 100},
		{"eval calls", bundle.ContentSignals{EvalCalls: 3}, 85},
		{"document.write", bundle.ContentSignals{DocumentWrite: 1}, 90},
		{"base64 blobs over limit", bundle.ContentSignals{Base64Blobs: 3}, 85},
		{"base64 blobs at limit", bundle.ContentSignals{Base64Blobs: 2}, 100},
		{"obfuscation", bundle.ContentSignals{ObfuscationScore: 75}, 80},
		{"hidden iframes", bundle.ContentSignals{HiddenIframes: 1}, 80},
		{"zero-size elements over limit", bundle.ContentSignals{ZeroSizeElements: 3}, 90},
		{"mismatched links", bundle.ContentSignals{MismatchedLinks: 1}, 80},
		{"data-URI links", bundle.ContentSignals{DataURILinks: 1}, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := scoreContentWith(t, &tt.sig)
			assert.Equal(t, tt.want, st[types.ContentSafety])
		})
	}
}

func TestScoreContentSafety_PenaltiesAccumulate(t *testing.T) {
	sig := &bundle.ContentSignals{
		InvisibleChars:     4,
		RTLOverrides:       1,
		FormActionExternal: true,
		HiddenIframes:      2,
		MismatchedLinks:    3,
	}
	st := scoreContentWith(t, sig)
	// 100 - 25 - 20 - 20 - 20 - 20; clamping happens later in the run.
	assert.Equal(t, -5, st[types.ContentSafety])
}

func TestScoreDeception(t *testing.T) {
	suspicious := &bundle.RedirectScan{
		Tree: &bundle.RedirectNode{
			URL:     "https://parked.example",
			Signals: []bundle.RedirectSignal{{Type: bundle.SignalJS}},
		},
	}

	t.Run("not parked is a no-op", func(t *testing.T) {
		e := newTestEngine()
		st := NewState(false)
		b := &bundle.Bundle{Redirect: suspicious}
		require.NoError(t, e.scoreDeception(Input{Bundle: b}, st))
		assert.Equal(t, 100, st[types.DomainReputation])
	})

	t.Run("parked without signals is a no-op", func(t *testing.T) {
		e := newTestEngine()
		st := NewState(false)
		b := &bundle.Bundle{Parked: &bundle.ParkedScan{Park: true}}
		require.NoError(t, e.scoreDeception(Input{Bundle: b}, st))
		assert.Equal(t, 100, st[types.DomainReputation])
	})

	t.Run("fake-parked penalty", func(t *testing.T) {
		e := newTestEngine()
		st := NewState(false)
		b := &bundle.Bundle{Parked: &bundle.ParkedScan{Park: true}, Redirect: suspicious}
		require.NoError(t, e.scoreDeception(Input{Bundle: b}, st))
		assert.Equal(t, 70, st[types.DomainReputation])
		assert.Equal(t, 85, st[types.ConnectionSecurity])
		// Content_Safety is created on demand for the penalty.
		assert.Equal(t, 75, st[types.ContentSafety])
	})
}
