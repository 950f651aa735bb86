package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("INTERBANKING_TEST_MODE") == "" {
			_ = os.Setenv("INTERBANKING_TEST_MODE", "1")
		}
	})
}
