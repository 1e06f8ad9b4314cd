package iofs

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"create dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "Cannot create /test/dir"},
		{"copy file", CopyFileError("/test/config.yaml", cause),
			errcode.CopyFileError, "Cannot copy config file to /test/config.yaml"},
		{"read file", ReadFileError("/test/config.yaml", cause),
			errcode.ReadFileError, "Cannot read <em>/test/config.yaml</em>"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Equal(t, v.text, fmt.Sprintf(gnErr.Msg, gnErr.Vars...))
			assert.ErrorIs(t, gnErr.Err, cause)
			// the wrapped error names the calling function
			assert.True(t, strings.Contains(gnErr.Err.Error(), "iofs"))
		})
	}
}
