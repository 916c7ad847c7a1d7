package domain

import (
	"fmt"
	"time"
)

// GameType classifies a catalog game into one of the fixed lobby categories.
type GameType string

const (
	GameTypeSlots   GameType = "slots"
	GameTypeTable   GameType = "table"
	GameTypeLive    GameType = "live"
	GameTypeCrash   GameType = "crash"
	GameTypeInstant GameType = "instant"
)

// GameTypes returns the closed set of valid game types.
func GameTypes() []GameType {
	return []GameType{GameTypeSlots, GameTypeTable, GameTypeLive, GameTypeCrash, GameTypeInstant}
}

// Valid reports whether t is one of the known game types.
func (t GameType) Valid() bool {
	switch t {
	case GameTypeSlots, GameTypeTable, GameTypeLive, GameTypeCrash, GameTypeInstant:
		return true
	}
	return false
}

// Flag identifies one of a game's boolean status flags.
type Flag string

const (
	FlagNew        Flag = "new"
	FlagHot        Flag = "hot"
	FlagFavorite   Flag = "favorite"
	FlagOnSale     Flag = "on_sale"
	FlagComingSoon Flag = "coming_soon"
)

// Valid reports whether f names a known flag.
func (f Flag) Valid() bool {
	switch f {
	case FlagNew, FlagHot, FlagFavorite, FlagOnSale, FlagComingSoon:
		return true
	}
	return false
}

// Provider is a game studio/vendor reference.
type Provider struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// GameCount is recomputed from the store's provider index on read,
	// never loaded from the source.
	GameCount int `json:"gameCount,omitempty"`
}

// Game is a single catalog entry. Games are passed by value: the store
// replaces the whole entry on mutation, so callers never observe a
// half-updated Game.
type Game struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     GameType `json:"type"`
	Provider Provider `json:"provider"`
	Tags     []string `json:"tags,omitempty"`

	PlayCount int `json:"playCount"`

	// RTP is the return-to-player percentage in [0,100]. Nil when the
	// provider does not publish one.
	RTP *float64 `json:"rtp,omitempty"`

	IsNew        bool `json:"isNew"`
	IsHot        bool `json:"isHot"`
	IsFavorite   bool `json:"isFavorite"`
	IsOnSale     bool `json:"isOnSale"`
	IsComingSoon bool `json:"isComingSoon"`

	ReleasedAt time.Time `json:"releasedAt"`
}

// FlagValue returns the value of the named flag.
func (g Game) FlagValue(f Flag) bool {
	switch f {
	case FlagNew:
		return g.IsNew
	case FlagHot:
		return g.IsHot
	case FlagFavorite:
		return g.IsFavorite
	case FlagOnSale:
		return g.IsOnSale
	case FlagComingSoon:
		return g.IsComingSoon
	}
	return false
}

// WithFlag returns a copy of the game with the named flag set to value.
func (g Game) WithFlag(f Flag, value bool) Game {
	switch f {
	case FlagNew:
		g.IsNew = value
	case FlagHot:
		g.IsHot = value
	case FlagFavorite:
		g.IsFavorite = value
	case FlagOnSale:
		g.IsOnSale = value
	case FlagComingSoon:
		g.IsComingSoon = value
	}
	return g
}

// HasRTP reports whether the game publishes a return percentage.
func (g Game) HasRTP() bool { return g.RTP != nil }

// FormattedRTP returns the RTP as a display string, or "" when absent.
func (g Game) FormattedRTP() string {
	if g.RTP == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *g.RTP)
}
