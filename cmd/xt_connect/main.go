// Command xt_connect makes an XTEA/Ristretto255 connection to a server, writes stdin to the server, and reads data
// to stdout.
package main

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"flag"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/handshake"
)

func main() {
	log := slog.New(slog.Default().Handler())

	addr := flag.String("addr", "127.0.0.1:5050", "the address to connect to")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	log.InfoContext(ctx, "connecting", "addr", *addr)
	dialer := new(net.Dialer)
	conn, err := dialer.DialContext(ctx, "tcp", *addr)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = conn.Close()
		log.Info("closed connection")
	}()

	finish, request, err := handshake.Initiate("xtea.proxy", rand.Reader)
	if err != nil {
		panic(err)
	}
	if _, err := conn.Write(request); err != nil {
		panic(err)
	}
	response := make([]byte, handshake.ResponseSize)
	if _, err := io.ReadFull(conn, response); err != nil {
		panic(err)
	}
	send, recv, err := finish(response)
	if err != nil {
		panic(err)
	}
	log.Info("handshake established")

	// Each direction has a fresh single-use key, so the counters start at zero.
	var iv [xtea.BlockSize]byte
	r := cipher.StreamReader{S: cipher.NewCTR(recv, iv[:]), R: conn}
	w := cipher.StreamWriter{S: cipher.NewCTR(send, iv[:]), W: conn}

	go func() {
		if _, err := io.Copy(w, os.Stdin); err != nil {
			log.ErrorContext(ctx, "error reading from stdin", "err", err)
		}
		cancel()
	}()
	go func() {
		if _, err := io.Copy(os.Stdout, r); err != nil {
			log.ErrorContext(ctx, "error writing to stdout", "err", err)
		}
		cancel()
	}()
	<-ctx.Done()
}
