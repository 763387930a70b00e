package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikhailRaia/shortlink/internal/model"
)

func TestEncode(t *testing.T) {
	data, err := Encode(model.Record{
		OwnerSecret: "aB3dE5fG7hJ9kL1mN3pQ5rS7tU9vW1xY",
		Target:      "https://example.org/a?x=1&y=<2>",
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"owner_secret":"aB3dE5fG7hJ9kL1mN3pQ5rS7tU9vW1xY","target":"https://example.org/a?x=1&y=<2>"}`,
		string(data))
	assert.NotContains(t, string(data), "\n")
	assert.Contains(t, string(data), "&y=<2>")
}

func TestEncode_DoesNotAliasPooledBuffer(t *testing.T) {
	first, err := Encode(model.Record{OwnerSecret: "one", Target: "https://one.example"})
	require.NoError(t, err)

	_, err = Encode(model.Record{OwnerSecret: "two", Target: "https://two.example"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"owner_secret":"one","target":"https://one.example"}`, string(first))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    model.Record
		wantErr bool
	}{
		{
			name: "Valid record",
			data: `{"owner_secret":"secret","target":"https://example.org/a"}`,
			want: model.Record{OwnerSecret: "secret", Target: "https://example.org/a"},
		},
		{
			name: "Unknown fields are ignored",
			data: `{"owner_secret":"secret","target":"x","extra":1}`,
			want: model.Record{OwnerSecret: "secret", Target: "x"},
		},
		{
			name:    "Missing owner secret",
			data:    `{"target":"https://example.org/a"}`,
			wantErr: true,
		},
		{
			name:    "Missing target",
			data:    `{"owner_secret":"secret"}`,
			wantErr: true,
		},
		{
			name:    "Empty target",
			data:    `{"owner_secret":"secret","target":""}`,
			wantErr: true,
		},
		{
			name:    "Non-string target",
			data:    `{"owner_secret":"secret","target":42}`,
			wantErr: true,
		},
		{
			name:    "Null document",
			data:    `null`,
			wantErr: true,
		},
		{
			name:    "Not JSON",
			data:    `garbage`,
			wantErr: true,
		},
		{
			name:    "Empty input",
			data:    ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCorruptRecord)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecode_PreservesTargetVerbatim(t *testing.T) {
	target := "  not a url, just bytes: ü \t "

	data, err := Encode(model.Record{OwnerSecret: "s", Target: target})
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, target, got.Target)
}
