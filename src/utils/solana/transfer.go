package solana

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
)

const (
	// Winstons one lamport buys at the co-signing service
	WINSTONS_PER_LAMPORT = 100_000

	// Smallest payment the service accepts, in lamports
	LAMPORTS_FLOOR = 10_000

	// Network fee of the payment transaction, in lamports
	SOL_BASE_FEE = 5_000

	// Lamports in one SOL
	LAMPORTS_PER_SOL = 1_000_000_000

	publicKeyLength = 32
	signatureLength = 64

	// Index of the transfer instruction within the system program
	systemTransferIndex = 2
)

// LamportsForWinstons prices an upload reward in lamports
func LamportsForWinstons(winstons uint64) uint64 {
	lamports := winstons / WINSTONS_PER_LAMPORT
	if lamports < LAMPORTS_FLOOR {
		lamports = LAMPORTS_FLOOR
	}
	return lamports + SOL_BASE_FEE
}

// appendCompactU16 writes the short-vec length encoding:
// 7 bit groups, low group first, high bit flags continuation
func appendCompactU16(buf []byte, v uint16) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(buf, b)
		}
		buf = append(buf, b|0x80)
	}
}

// BuildTransfer serializes a signed transaction moving lamports from the
// keypair to the recipient. One signature, one system program transfer
// instruction.
func BuildTransfer(from *Keypair, to string, lamports uint64, recentBlockhash string) (out []byte, err error) {
	recipient := base58.Decode(to)
	if len(recipient) != publicKeyLength {
		err = ErrInvalidAddress
		return
	}

	blockhash := base58.Decode(recentBlockhash)
	if len(blockhash) != publicKeyLength {
		err = ErrInvalidBlockhash
		return
	}

	// Payer signs and pays, recipient is written to,
	// the system program is read only
	message := []byte{1, 0, 1}
	message = appendCompactU16(message, 3)
	message = append(message, from.PublicKey()...)
	message = append(message, recipient...)
	message = append(message, make([]byte, publicKeyLength)...)
	message = append(message, blockhash...)

	instructionData := make([]byte, 12)
	binary.LittleEndian.PutUint32(instructionData[0:4], systemTransferIndex)
	binary.LittleEndian.PutUint64(instructionData[4:12], lamports)

	message = appendCompactU16(message, 1)
	message = append(message, 2) // program id index
	message = appendCompactU16(message, 2)
	message = append(message, 0, 1) // payer, recipient
	message = appendCompactU16(message, uint16(len(instructionData)))
	message = append(message, instructionData...)

	signature := from.Sign(message)

	out = appendCompactU16(nil, 1)
	out = append(out, signature...)
	out = append(out, message...)
	return
}
