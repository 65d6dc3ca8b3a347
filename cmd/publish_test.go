package cmd

import "testing"

func TestPublishFilesNeverIncludePlaintextBook(t *testing.T) {
	for _, encrypted := range []bool{false, true} {
		for _, f := range publishFiles(encrypted) {
			if f == bookFile {
				t.Errorf("publishFiles(%v) stages %s, which carries plaintext invite codes", encrypted, f)
			}
		}
	}
}

func TestPublishFilesEncryptedBookOnlyWithKey(t *testing.T) {
	has := func(files []string, name string) bool {
		for _, f := range files {
			if f == name {
				return true
			}
		}
		return false
	}
	if !has(publishFiles(true), bookFile+".enc") {
		t.Error("encrypted publish must stage the encrypted book")
	}
	if has(publishFiles(false), bookFile+".enc") {
		t.Error("keyless publish must not stage a stale encrypted book")
	}
}
