package base64_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gather/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{
			name: "png data uri",
			file: "data:image/png;base64,iVBORw0KGgo=",
			want: "image/png",
		},
		{
			name: "jpeg data uri",
			file: "data:image/jpeg;base64,/9j/4AAQ",
			want: "image/jpeg",
		},
		{
			name: "missing base64 marker",
			file: "data:image/png,rawdata",
			want: "",
		},
		{
			name: "plain string",
			file: "not a data uri",
			want: "",
		},
		{
			name: "empty string",
			file: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base64.GetContentType(tt.file))
		})
	}
}
