// Package web holds the document assets embedded into the shell binary.
//
// static/ is served by the asset responder; scripts/ holds the bootstrap
// scripts the host injects before any page script runs.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

//go:embed scripts
var scripts embed.FS

// Bootstrap script names.
const (
	ScriptInit   = "init.js"
	ScriptCORS   = "cors.js"
	ScriptNative = "ipc_native.js"
	ScriptSocket = "ipc_socket.js"
	ScriptSmoke  = "smoke.js"
)

// Static returns the servable asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Script returns the named bootstrap script.
func Script(name string) (string, error) {
	data, err := scripts.ReadFile("scripts/" + name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MustScript is Script for names known at compile time.
func MustScript(name string) string {
	s, err := Script(name)
	if err != nil {
		panic(err)
	}
	return s
}
