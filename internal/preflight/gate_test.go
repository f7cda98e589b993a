package preflight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netwatch/posture/internal/bundle"
)

func TestEvaluate(t *testing.T) {
	suspicious := &bundle.RedirectScan{
		Tree: &bundle.RedirectNode{
			URL: "https://parked.example",
			Children: []*bundle.RedirectNode{
				{URL: "https://landing.example", Signals: []bundle.RedirectSignal{{Type: bundle.SignalMeta}}},
			},
		},
	}
	plain := &bundle.RedirectScan{
		Tree: &bundle.RedirectNode{URL: "https://parked.example"},
	}

	tests := []struct {
		name string
		b    *bundle.Bundle
		want Outcome
	}{
		{"nil bundle", nil, Proceed},
		{"no signals at all", &bundle.Bundle{}, Proceed},
		{"alive and unparked", &bundle.Bundle{Dead: &bundle.DeadScan{}, Parked: &bundle.ParkedScan{}}, Proceed},
		{"dead", &bundle.Bundle{Dead: &bundle.DeadScan{Dead: true}}, Dead},
		{
			"dead wins over parked",
			&bundle.Bundle{Dead: &bundle.DeadScan{Dead: true}, Parked: &bundle.ParkedScan{Park: true}},
			Dead,
		},
		{"parked", &bundle.Bundle{Parked: &bundle.ParkedScan{Park: true}}, Parked},
		{
			"parked with plain redirect tree",
			&bundle.Bundle{Parked: &bundle.ParkedScan{Park: true}, Redirect: plain},
			Parked,
		},
		{
			"parked hiding browser-executed redirect",
			&bundle.Bundle{Parked: &bundle.ParkedScan{Park: true}, Redirect: suspicious},
			Proceed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.b))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "proceed", Proceed.String())
	assert.Equal(t, "dead", Dead.String())
	assert.Equal(t, "parked", Parked.String())
}
