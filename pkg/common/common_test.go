package common

import (
	"path/filepath"
	"testing"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "S3cret") || CheckPassword("", "s3cret") {
		t.Error("wrong password accepted")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if !FileExists(dir) {
		t.Error("temp dir should exist")
	}
	if FileExists(filepath.Join(dir, "missing.yml")) {
		t.Error("missing file reported as existing")
	}
}

func TestIsEmptyOrNA(t *testing.T) {
	for _, v := range []string{"", "  ", "n/a", "NULL"} {
		if !IsEmptyOrNA(v) {
			t.Errorf("IsEmptyOrNA(%q) = false", v)
		}
	}
	if IsEmptyOrNA("x") {
		t.Error("IsEmptyOrNA(x) = true")
	}
	if got := NormalizeUsername("  Alice "); got != "alice" {
		t.Errorf("NormalizeUsername = %q", got)
	}
}
