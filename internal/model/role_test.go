package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	b, err := json.Marshal(Roles())
	require.NoError(t, err)
	require.JSONEq(t, `["admin","usuario","moderador"]`, string(b))

	// 呼叫端修改回傳值不影響下一次結果
	r := Roles()
	r[0] = "root"
	require.Equal(t, RoleAdmin, Roles()[0])
}

func TestUserJSONHidesHash(t *testing.T) {
	b, err := json.Marshal(User{ID: 1, Name: "Ana", PasswordHash: "secret-hash"})
	require.NoError(t, err)
	require.NotContains(t, string(b), "secret-hash")
}
