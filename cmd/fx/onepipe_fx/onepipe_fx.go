package onepipe_fx

import (
	"log"
	"os"
	"time"

	"go.uber.org/fx"

	"easyshop/pkg/onepipe"
)

var Module = fx.Provide(provideOnepipeClient)

// ONEPIPE_MOCK_MODE=true swaps in the deterministic in-process client so the
// rest of the system runs without provider credentials.
func provideOnepipeClient() onepipe.Client {
	if os.Getenv("ONEPIPE_MOCK_MODE") == "true" {
		log.Println("OnePipe client running in mock mode")
		return onepipe.NewMockClient()
	}

	return onepipe.NewClient(onepipe.Config{
		APIURL:       os.Getenv("ONEPIPE_API_URL"),
		APIKey:       os.Getenv("ONEPIPE_API_KEY"),
		ClientSecret: os.Getenv("ONEPIPE_CLIENT_SECRET"),
		Timeout:      30 * time.Second,
	})
}
