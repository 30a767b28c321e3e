// Command xt_proxy is an XTEA/Ristretto255 encryption proxy which terminates plaintext connections and makes
// handshake/CTR connections.
package main

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net"

	"github.com/codahale/xtea"
	"github.com/codahale/xtea/handshake"
)

func main() {
	var (
		listen  = flag.String("listen", "127.0.0.1:6060", "the address to listen on")
		connect = flag.String("connect", "127.0.0.1:5050", "the address to connect to")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	listenConfig := new(net.ListenConfig)
	listener, err := listenConfig.Listen(context.Background(), "tcp", *listen)
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

			log.Info("connecting", "addr", *connect)
			dialer := new(net.Dialer)
			client, err := dialer.DialContext(context.Background(), "tcp", *connect)
			if err != nil {
				log.Error("error connecting", "err", err)
				return
			}
			defer func() {
				_ = client.Close()
			}()

			finish, request, err := handshake.Initiate("xtea.proxy", rand.Reader)
			if err != nil {
				log.Error("error initiating handshake", "err", err)
				return
			}
			if _, err := client.Write(request); err != nil {
				log.Error("error writing handshake request", "err", err)
				return
			}
			response := make([]byte, handshake.ResponseSize)
			if _, err := io.ReadFull(client, response); err != nil {
				log.Error("error reading handshake response", "err", err)
				return
			}
			send, recv, err := finish(response)
			if err != nil {
				log.Error("error finishing handshake", "err", err)
				return
			}
			log.Info("handshake established")

			// Each direction has a fresh single-use key, so the counters start at zero.
			var iv [xtea.BlockSize]byte
			r := cipher.StreamReader{S: cipher.NewCTR(recv, iv[:]), R: client}
			w := cipher.StreamWriter{S: cipher.NewCTR(send, iv[:]), W: client}

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				if _, err := io.Copy(w, conn); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("error reading from client", "err", err)
				}
				cancel()
			}()
			go func() {
				if _, err := io.Copy(conn, r); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("error writing to server", "err", err)
				}
				cancel()
			}()
			<-ctx.Done()
		}()
	}
}
