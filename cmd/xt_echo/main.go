// Command xt_echo listens for XTEA/Ristretto255 connections, reads data, and writes the same data back.
package main

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"flag"
	"io"
	"log/slog"
	"net"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/handshake"
)

func main() {
	log := slog.New(slog.Default().Handler())

	addr := flag.String("addr", "127.0.0.1:5050", "the address to listen on")
	flag.Parse()

	listenConfig := new(net.ListenConfig)
	listener, err := listenConfig.Listen(context.Background(), "tcp", *addr)
	if err != nil {
		panic(err)
	}
	log.Info("listening", "addr", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Error("failed to accept connection", "err", err)
			continue
		}

		go func() {
			log.Info("accepted new connection", "addr", conn.RemoteAddr())
			defer func() {
				_ = conn.Close()
				log.Info("closed connection", "addr", conn.RemoteAddr())
			}()

			request := make([]byte, handshake.RequestSize)
			if _, err := io.ReadFull(conn, request); err != nil {
				log.Error("error reading handshake request", "err", err)
				return
			}
			send, recv, response, err := handshake.Respond("xtea.proxy", rand.Reader, request)
			if err != nil {
				log.Error("error responding to handshake", "err", err)
				return
			}
			if _, err := conn.Write(response); err != nil {
				log.Error("error writing handshake response", "err", err)
				return
			}
			log.Info("handshake established")

			// Each direction has a fresh single-use key, so the counters start at zero.
			var iv [xtea.BlockSize]byte
			r := cipher.StreamReader{S: cipher.NewCTR(recv, iv[:]), R: conn}
			w := cipher.StreamWriter{S: cipher.NewCTR(send, iv[:]), W: conn}

			if _, err := io.Copy(w, r); err != nil {
				log.Error("error echoing data", "err", err)
			}
		}()
	}
}
