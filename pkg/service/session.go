package service

import (
	"sync/atomic"

	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/navigation"
)

// Session is the state one view carries between renders.
type Session struct {
	Nav      navigation.State
	Settings models.ViewSettings
}

// Result is the output of one render.
type Result struct {
	Seq         uint64             `json:"-"`
	Folder      string             `json:"folder"`
	Breadcrumbs []navigation.Crumb `json:"breadcrumbs"`
	Cards       []models.Card      `json:"cards"`
	VaultFiles  int                `json:"vault_files"`
}

// Renderer hands out render sequence numbers. A render result is current
// only while no later render has begun.
type Renderer struct {
	seq atomic.Uint64
}

// Begin issues the next sequence number.
func (r *Renderer) Begin() uint64 {
	return r.seq.Add(1)
}

// IsLatest reports whether seq is the most recently issued number.
func (r *Renderer) IsLatest(seq uint64) bool {
	return r.seq.Load() == seq
}

// NewSession starts a session at the vault root.
func NewSession(settings models.ViewSettings) Session {
	return Session{Nav: navigation.New(), Settings: settings}
}
