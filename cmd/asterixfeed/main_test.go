package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asterixdecode/internal/asterix"
)

func TestListenUDP_DispatchesReceivedPackets(t *testing.T) {
	dispatcher := asterix.NewPacketDispatcher()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	addr := conn.LocalAddr().String()
	require.NoError(t, conn.Close())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- listenUDP(ctx, addr, dispatcher, nil) }()

	time.Sleep(50 * time.Millisecond) // let the listener bind

	client, err := net.Dial("udp", addr)
	require.NoError(t, err)
	defer client.Close()

	// A single, deliberately-unhandled-category block: any registered
	// category would start touching category-specific state this test
	// doesn't set up.
	block := []byte{0xFF, 0x00, 0x05, 0x00, 0x00}
	_, err = client.Write(block)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return dispatcher.Diagnostics().Snapshot().TotalPackets > 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listenUDP did not stop after context cancellation")
	}
}
