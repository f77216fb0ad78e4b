package plugin

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeRow copies a Row into the struct pointed to by dest. Fields are
// matched by their `db` tag, falling back to a case-insensitive field name
// match. Timestamp strings nested in JSON columns decode into time.Time
// fields, numbers decode into any numeric field.
func DecodeRow(row Row, dest any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "db",
		Result:  dest,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create row decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(row)); err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	return nil
}
