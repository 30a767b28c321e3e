// Package handshake implements an unauthenticated ephemeral-ephemeral handshake using Ristretto255, deriving one XTEA
// session key per direction.
//
// This handshake provides confidentiality against passive observers and forward secrecy, but neither party
// authenticates the other. An active attacker can sit in the middle and complete a handshake with each side. It is
// equivalent to the "NN" handshake from the [Noise Protocol Framework]:
//
//	NN:
//	-> e
//	<- e, ee
//
// [Noise Protocol Framework]: http://www.noiseprotocol.org/noise.html#protocol-names-and-modifiers
package handshake

import (
	"crypto/sha3"
	"errors"
	"io"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/bytebuf"
	"github.com/gtank/ristretto255"
)

const (
	// RequestSize is the size, in bytes, of the initiator's request.
	RequestSize = 32
	// ResponseSize is the size, in bytes, of the responder's response.
	ResponseSize = 32
)

// ErrInvalidHandshake is returned when some aspect of the handshake is cryptographically invalid.
var ErrInvalidHandshake = errors.New("xtea/handshake: invalid handshake")

// InitiatorFinish is a callback which accepts a response from a responder and completes the handshake, returning a
// pair of keyed ciphers for sending and receiving.
type InitiatorFinish = func(response []byte) (send, recv *xtea.Cipher, err error)

// Initiate starts the handshake from the initiator role, returning a finish function, a request, and potentially an
// error. If no error is returned, the request should be transmitted to the responder.
func Initiate(domain string, rand io.Reader) (finish InitiatorFinish, request []byte, err error) {
	// Generate an ephemeral key pair.
	var r [64]byte
	if _, err := io.ReadFull(rand, r[:]); err != nil {
		return nil, nil, err
	}
	dIE, _ := ristretto255.NewScalar().SetUniformBytes(r[:])
	qIE := ristretto255.NewIdentityElement().ScalarBaseMult(dIE)
	request = qIE.Bytes()

	// Wait for the responder's response.
	finish = func(response []byte) (send, recv *xtea.Cipher, err error) {
		// Decode the responder's ephemeral public key.
		qRE, err := ristretto255.NewIdentityElement().SetCanonicalBytes(response)
		if err != nil {
			return nil, nil, ErrInvalidHandshake
		}

		// Calculate the ephemeral shared secret.
		ee := ristretto255.NewIdentityElement().ScalarMult(dIE, qRE)

		// Derive a session key for each direction.
		initiatorToResponder, responderToInitiator := deriveCiphers(domain, qIE, qRE, ee)
		return initiatorToResponder, responderToInitiator, nil
	}
	return finish, request, nil
}

// Respond accepts a request from an initiator and completes the handshake from the responder role, returning a pair
// of keyed ciphers for sending and receiving, a response, and potentially an error. If no error is returned, the
// response should be transmitted to the initiator.
func Respond(domain string, rand io.Reader, request []byte) (send, recv *xtea.Cipher, response []byte, err error) {
	// Decode the initiator's ephemeral public key.
	qIE, err := ristretto255.NewIdentityElement().SetCanonicalBytes(request)
	if err != nil {
		return nil, nil, nil, ErrInvalidHandshake
	}

	// Generate an ephemeral key pair.
	var r [64]byte
	if _, err := io.ReadFull(rand, r[:]); err != nil {
		return nil, nil, nil, err
	}
	dRE, _ := ristretto255.NewScalar().SetUniformBytes(r[:])
	qRE := ristretto255.NewIdentityElement().ScalarBaseMult(dRE)
	response = qRE.Bytes()

	// Calculate the ephemeral shared secret.
	ee := ristretto255.NewIdentityElement().ScalarMult(dRE, qIE)

	// Derive a session key for each direction.
	initiatorToResponder, responderToInitiator := deriveCiphers(domain, qIE, qRE, ee)
	return responderToInitiator, initiatorToResponder, response, nil
}

// deriveCiphers hashes the domain, the ordered ephemeral public keys, and the shared secret into one session key per
// direction.
func deriveCiphers(domain string, qIE, qRE, ee *ristretto255.Element) (initiatorToResponder, responderToInitiator *xtea.Cipher) {
	transcript := bytebuf.NewSize(4 + len(domain) + 3*32)
	transcript.WriteUint32(uint32(len(domain)))
	_, _ = transcript.Write([]byte(domain))
	_, _ = transcript.Write(qIE.Bytes())
	_, _ = transcript.Write(qRE.Bytes())
	_, _ = transcript.Write(ee.Bytes())

	kdf := sha3.NewSHAKE128()
	_, _ = kdf.Write(transcript.Bytes())

	var keys [2 * xtea.KeySize]byte
	_, _ = kdf.Read(keys[:])

	initiatorToResponder = xtea.NewFromBytes([xtea.KeySize]byte(keys[:xtea.KeySize]))
	responderToInitiator = xtea.NewFromBytes([xtea.KeySize]byte(keys[xtea.KeySize:]))
	return initiatorToResponder, responderToInitiator
}
