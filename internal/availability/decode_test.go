package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/parkwatch/internal/domain"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      domain.Snapshot
		wantField string
		wantErr   bool
	}{
		{name: "minimal", body: `{"available_spaces": 12, "total": 50}`, want: domain.Snapshot{AvailableSpaces: 12, TotalSpaces: 50}},
		{name: "zeros", body: `{"available_spaces": 0, "total": 0}`, want: domain.Snapshot{}},
		{name: "extra fields ignored", body: `{"available_spaces": 1, "total": 2, "lot": "A"}`, want: domain.Snapshot{AvailableSpaces: 1, TotalSpaces: 2}},
		{name: "missing available", body: `{"total": 50}`, wantErr: true, wantField: "available_spaces"},
		{name: "missing total", body: `{"available_spaces": 3}`, wantErr: true, wantField: "total"},
		{name: "negative total", body: `{"available_spaces": 3, "total": -1}`, wantErr: true, wantField: "total"},
		{name: "negative optional", body: `{"available_spaces": 3, "total": 4, "unknown_spaces": -2}`, wantErr: true, wantField: "unknown_spaces"},
		{name: "wrong type", body: `{"available_spaces": "many", "total": 4}`, wantErr: true, wantField: "available_spaces"},
		{name: "fractional", body: `{"available_spaces": 1.5, "total": 4}`, wantErr: true, wantField: "available_spaces"},
		{name: "null", body: `null`, wantErr: true, wantField: "available_spaces"},
		{name: "array", body: `[1, 2]`, wantErr: true},
		{name: "not json", body: `<html>oops</html>`, wantErr: true},
		{name: "empty", body: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDecode)
			var decErr *domain.DecodeError
			require.ErrorAs(t, err, &decErr)
			assert.Equal(t, tt.wantField, decErr.Field)
			assert.Contains(t, domain.DisplayMessage(err), "Error de datos: ")
		})
	}
}
