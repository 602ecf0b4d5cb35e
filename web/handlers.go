package web

import (
	"github.com/rohanthewiz/rweb"
)

const Greeting = "Hello world!"

// askHandler answers every GET /ask with the same greeting
func askHandler(ctx rweb.Context) error {
	ctx.Status(200)
	return ctx.WriteString(Greeting)
}
