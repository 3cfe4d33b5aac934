//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lukasdietrich/brieftaube/internal/crypto"
	"github.com/lukasdietrich/brieftaube/internal/delivery"
	"github.com/lukasdietrich/brieftaube/internal/directory"
	"github.com/lukasdietrich/brieftaube/internal/mails"
	"github.com/lukasdietrich/brieftaube/internal/storage"
)

var wireSet = wire.NewSet(
	wire.Struct(new(parseCommand), "*"),
	wire.Struct(new(sendCommand), "*"),

	mails.NewContentTypes,

	storage.WireSet,
	crypto.WireSet,
	directory.WireSet,
	delivery.WireSet,
)

func newParseCommand() (*parseCommand, error) {
	panic(wire.Build(wireSet))
}

func newSendCommand() (*sendCommand, error) {
	panic(wire.Build(wireSet))
}
