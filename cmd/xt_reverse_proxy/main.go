// Command xt_reverse_proxy is an XTEA/Ristretto255 encryption reverse proxy which terminates handshake/CTR
// connections and makes plaintext connections.
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
		listen  = flag.String("listen", "127.0.0.1:5050", "the address to listen on")
		connect = flag.String("connect", "127.0.0.1:4040", "the address to connect to")
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

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				if _, err := io.Copy(client, r); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("error reading from client", "err", err)
				}
				cancel()
			}()
			go func() {
				if _, err := io.Copy(w, client); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("error writing to server", "err", err)
				}
				cancel()
			}()
			<-ctx.Done()
		}()
	}
}
