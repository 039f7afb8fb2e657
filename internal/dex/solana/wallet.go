package solana

import (
	"errors"
	"os"

	solana "github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

// LoadPrivateKeyFromEnv reads the signing key from SOLANA_PRIVATE_KEY_BASE58.
func LoadPrivateKeyFromEnv() (solana.PrivateKey, error) {
	_ = godotenv.Load() // best-effort
	b58 := os.Getenv("SOLANA_PRIVATE_KEY_BASE58")
	if b58 == "" {
		return nil, errors.New("SOLANA_PRIVATE_KEY_BASE58 not set")
	}
	return solana.PrivateKeyFromBase58(b58)
}

// ResolveOwner returns the wallet to inspect: WALLET_ADDRESS when set,
// otherwise the public key of the signing key.
func ResolveOwner() (solana.PublicKey, error) {
	_ = godotenv.Load() // best-effort
	if addr := os.Getenv("WALLET_ADDRESS"); addr != "" {
		return solana.PublicKeyFromBase58(addr)
	}
	key, err := LoadPrivateKeyFromEnv()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return key.PublicKey(), nil
}
