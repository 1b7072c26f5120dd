package transaction_test

import (
	"encoding/json"
	"io"
	"strconv"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}
