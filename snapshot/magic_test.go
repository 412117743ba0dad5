// Copyright 2023 The rtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"io"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagic(t *testing.T) {
	testCases := []struct {
		name    string
		input   []byte
		want    Version
		wantErr error
		errText string
	}{
		{
			name:    "Empty",
			wantErr: io.EOF,
		},
		{
			name:    "Short",
			input:   magic[0:5],
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:  "AnyVersion",
			input: []byte("rtrXrtrY"),
			want:  Version{Major: 'X', Patch: 'Y'},
		},
		{
			name:  "Current",
			input: magic[:],
			want:  Version{Major: 1},
		},
		{
			name:  "Future",
			input: []byte{0x72, 0x74, 0x72, 0x02, 0x72, 0x74, 0x72, 0x05},
			want:  Version{Major: 2, Patch: 5},
		},
		{
			name:    "Garbage",
			input:   []byte("fgb\x03fgb\x00"),
			errText: "snapshot: bad format: invalid magic number",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			input := testCase.input
			if testCase.wantErr == nil {
				input = append(slices.Clone(input), 0xaa)
			}
			r := bytes.NewReader(input)

			v, err := Magic(r)

			switch {
			case testCase.wantErr != nil:
				assert.ErrorIs(t, err, testCase.wantErr)
			case testCase.errText != "":
				assert.EqualError(t, err, testCase.errText)
			default:
				assert.NoError(t, err)
				assert.Equal(t, testCase.want, v)
				assert.Equal(t, 1, r.Len(), "must not read past magic number")
			}
		})
	}
}
