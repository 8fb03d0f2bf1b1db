package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerKind_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    PlayerKind
		wantErr bool
	}{
		{"human", Human, false},
		{"HUMAN", Human, false},
		{" computer ", Computer, false},
		{"bot", Computer, false},
		{"robot", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var k PlayerKind
			err := k.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, k.Valid(), "a failed Set leaves the kind unset")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestPlayerKind_ZeroIsUnset(t *testing.T) {
	var k PlayerKind

	assert.False(t, k.Valid())
	assert.Equal(t, "unset", k.String())
	assert.True(t, Human.Valid())
	assert.True(t, Computer.Valid())
}

func TestPlayerKind_Text(t *testing.T) {
	b, err := Computer.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "computer", string(b))

	var k PlayerKind
	require.NoError(t, k.UnmarshalText([]byte("human")))
	assert.Equal(t, Human, k)
	assert.Equal(t, "player", k.Type())
}
