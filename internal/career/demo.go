package career

import (
	"context"
	_ "embed"
)

//go:embed mock_data.json
var demoFixture []byte

// DemoFixture returns the raw embedded demo document.
func DemoFixture() []byte {
	return demoFixture
}

// DemoSource serves the embedded demo paths without any network access.
type DemoSource struct{}

func (DemoSource) Fetch(_ context.Context, _ Request) ([]Path, error) {
	return DecodePaths(demoFixture)
}
