package helpers

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPasswordHash(hash, "rahasia123"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPasswordHash(hash, "salah"); err == nil {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestValidateLoginInput(t *testing.T) {
	cases := []struct {
		email, password string
		ok              bool
	}{
		{"siswa@sekolah.id", "x", true},
		{"  guru@sekolah.id ", "x", true},
		{"", "x", false},
		{"siswa@sekolah.id", "", false},
		{"bukan-email", "x", false},
	}
	for _, tc := range cases {
		err := ValidateLoginInput(tc.email, tc.password)
		if (err == nil) != tc.ok {
			t.Errorf("ValidateLoginInput(%q, %q) err=%v, want ok=%v", tc.email, tc.password, err, tc.ok)
		}
	}
}
