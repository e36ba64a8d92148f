package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/ajarov/minesweep/internal/handlers"
	"github.com/ajarov/minesweep/web"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.tracker, createRand())

	a.router.HandleFunc("GET /v1/status", game.Status)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/open", game.Open)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /v1/game/{id}/reset", game.Reset)
	a.router.HandleFunc("POST /v1/game/{id}/batch", game.Batch)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("GET /v1/records", game.GetRecords)
	a.router.HandleFunc("GET /v1/settings", game.GetSettings)
	a.router.HandleFunc("PUT /v1/settings", game.PutSettings)

	// embedded browser client, including the service worker
	a.router.Handle("/", http.FileServer(web.FS()))
}
