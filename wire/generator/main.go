package main

import (
	"github.com/outofforest/peerwire/wire"
	"github.com/outofforest/proton"
)

//go:generate go run .
func main() {
	proton.Generate("../types.proton.go",
		proton.Message[wire.Hello](),
		proton.Message[wire.Identity](),
		proton.Message[wire.KeepAlive](),
		proton.Message[wire.Choke](),
		proton.Message[wire.Unchoke](),
		proton.Message[wire.Interested](),
		proton.Message[wire.NotInterested](),
		proton.Message[wire.Have](),
		proton.Message[wire.Bitfield](),
		proton.Message[wire.Request](),
		proton.Message[wire.Piece](),
		proton.Message[wire.Cancel](),
	)
}
