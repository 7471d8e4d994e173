package models

import (
	"testing"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Credentials
		wantErr bool
	}{
		{name: "two lines", body: "someLoginId\nsomeAppToken", want: Credentials{LoginID: "someLoginId", Secret: "someAppToken"}},
		{name: "trailing newline", body: "someLoginId\nsomeAppToken\n", want: Credentials{LoginID: "someLoginId", Secret: "someAppToken"}},
		{name: "crlf", body: "someLoginId\r\nsomePassword\r\n", want: Credentials{LoginID: "someLoginId", Secret: "somePassword"}},
		{name: "secret with spaces kept", body: "id\n pass word ", want: Credentials{LoginID: "id", Secret: " pass word "}},
		{name: "single line", body: "someLoginId", wantErr: true},
		{name: "empty", body: "", wantErr: true},
		{name: "three lines", body: "a\nb\nc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCredentials([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrMalformedRequest)
				assert.Equal(t, Credentials{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
