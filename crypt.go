package fund

import (
	"fmt"
	"os"
	"os/exec"
)

// The private snapshot travels through a git remote, so it is encrypted
// at rest with openssl. Sticking with the openssl CLI keeps the .enc
// files compatible with the operator's existing shell workflow for
// inspecting or recovering them.

// EncryptBookFile encrypts the snapshot at path into path+".enc" with
// aes-256-cbc keyed by the given passphrase.
func EncryptBookFile(path, key string) error {
	cmd := exec.Command("openssl", "enc", "-aes-256-cbc", "-pbkdf2", "-salt",
		"-in", path,
		"-out", path+".enc",
		"-pass", "pass:"+key)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("encrypting %q: %v: %s", path, err, out)
	}
	return nil
}

// DecryptBookFile restores the snapshot at path from path+".enc". It
// reports false without error when there is nothing to decrypt.
func DecryptBookFile(path, key string) (bool, error) {
	enc := path + ".enc"
	if _, err := os.Stat(enc); err != nil {
		return false, nil
	}
	if key == "" {
		return false, nil
	}
	cmd := exec.Command("openssl", "enc", "-aes-256-cbc", "-pbkdf2", "-d",
		"-in", enc,
		"-out", path,
		"-pass", "pass:"+key)
	if out, err := cmd.CombinedOutput(); err != nil {
		return false, fmt.Errorf("decrypting %q: %v: %s", enc, err, out)
	}
	return true, nil
}
