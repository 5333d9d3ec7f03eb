package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Mentor ")
	require.NoError(t, err)
	require.Equal(t, RoleMentor, role)

	role, err = ParseRole("student")
	require.NoError(t, err)
	require.Equal(t, RoleStudent, role)

	_, err = ParseRole("admin")
	require.Error(t, err)
}

func TestMentorPoints(t *testing.T) {
	for _, hours := range []int{1, 5, 12, 100} {
		require.Equal(t, hours*10, MentorPoints(hours))
	}
}

func TestPrincipalProjection(t *testing.T) {
	mentor := Mentor{Email: "m@example.com", Name: "Mia", Skills: "math"}
	p := mentor.Principal()
	require.Equal(t, RoleMentor, p.Role)
	require.Equal(t, "math", p.Attributes["skills"])

	student := Student{Email: "s@example.com", Name: "Sam", Department: "CS"}
	require.Equal(t, "CS", student.Principal().Attributes["department"])
}
