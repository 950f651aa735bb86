package main

import (
	"testing"

	"github.com/interbanking/interbanking-api/internal/app"
	_ "github.com/interbanking/interbanking-api/internal/testing/guard"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected test mode to be enabled by the guard")
	}
	// Would block on signals or fail to reach postgres outside test mode.
	main()
}
