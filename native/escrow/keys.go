package escrow

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// VaultAddress is the module account escrowed funds sit in between deposit
// and settlement. It has no private key.
var VaultAddress = deriveVaultAddress()

func deriveVaultAddress() [20]byte {
	digest := ethcrypto.Keccak256([]byte("fusionmarket/escrow/vault"))
	var addr [20]byte
	copy(addr[:], digest[12:])
	return addr
}

// DeriveID computes the deterministic escrow identifier for a deposit.
// Owners advance the nonce per deposit, so identifiers are never reused.
func DeriveID(owner [20]byte, assetRef [32]byte, nonce uint64) [32]byte {
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	return ethcrypto.Keccak256Hash(owner[:], assetRef[:], nonceBytes[:])
}
