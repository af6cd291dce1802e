package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"
	"path/filepath"
)

const hostKeyBits = 2048

// Initialize writes a default configuration into the given directory.
// Existing files are kept, so it's safe to re-run.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	for _, sub := range []string{"", PackagesDirName, BinDirName} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, err
		}
	}

	configPath := filepath.Join(dir, ConfigurationName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Printf("writing default config to %s", configPath)
		if err := os.WriteFile(configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	keyPath := filepath.Join(dir, PrivateKeyName)
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		logger.Printf("generating %d bit host key at %s", hostKeyBits, keyPath)
		keyPem, err := generateHostKey()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(keyPath, keyPem, 0600); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return Load(dir)
}

func generateHostKey() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, hostKeyBits)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}), nil
}
