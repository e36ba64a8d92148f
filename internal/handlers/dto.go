package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/ajarov/minesweep/internal/mines"
	"github.com/ajarov/minesweep/internal/records"
)

var dec = schema.NewDecoder()

func init() {
	dec.IgnoreUnknownKeys(true)
}

// NewGameDTO describes a game request: either a difficulty preset or
// explicit custom dimensions. Toggle fields override saved settings
// when present.
type NewGameDTO struct {
	Difficulty string `schema:"difficulty"`
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	SafeFirst  *bool  `schema:"safe_first"`
	FloodFill  *bool  `schema:"flood_fill"`
}

// Params resolves the request into clamped game params, using saved
// settings for toggles the request leaves out.
func (dto NewGameDTO) Params(saved records.Settings) mines.GameParams {
	params, ok := mines.Preset(dto.Difficulty)
	if !ok {
		params = mines.GameParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		}.Clamp()
	}
	params.SafeFirst = saved.SafeFirst
	params.FloodFill = saved.FloodFill
	if dto.SafeFirst != nil {
		params.SafeFirst = *dto.SafeFirst
	}
	if dto.FloodFill != nil {
		params.FloodFill = *dto.FloodFill
	}
	return params
}

func parseNewGameDTO(query url.Values) (NewGameDTO, error) {
	var dto NewGameDTO
	err := dec.Decode(&dto, query)
	return dto, err
}

type PosDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func parsePosDTO(query url.Values) (PosDTO, error) {
	var dto PosDTO
	err := dec.Decode(&dto, query)
	return dto, err
}

// SettingsDTO is the PUT /v1/settings payload.
type SettingsDTO struct {
	Sound      bool                `json:"sound"`
	SafeFirst  bool                `json:"safe_first"`
	FloodFill  bool                `json:"flood_fill"`
	Difficulty string              `json:"difficulty"`
	Custom     records.CustomBoard `json:"custom"`
}
