// Package mentor assembles the chat client: multi-tab sessions, the exchange
// protocol, pins, and the saved-chat archive, wired the way the web frontend
// uses them.
package mentor

import (
	"context"

	"github.com/aimentor/mentor-go/internal/archive"
	"github.com/aimentor/mentor-go/internal/chat"
	"github.com/aimentor/mentor-go/internal/exchange"
	"github.com/aimentor/mentor-go/internal/llm"
)

// Client is one running chat client. Sessions and pins live in memory; the
// archive and preferences persist across restarts.
type Client struct {
	Registry *chat.Registry
	Pins     *chat.PinSet
	Exchange *exchange.Exchanger
	Archive  *archive.Store
}

// Options configures a client.
type Options struct {
	StoragePath        string
	DefaultSessionName string
	Exchange           exchange.Options
}

// NewClient creates a client with one empty session.
func NewClient(completion llm.Client, opts Options) *Client {
	registry := chat.NewRegistry(opts.DefaultSessionName)
	return &Client{
		Registry: registry,
		Pins:     chat.NewPinSet(),
		Exchange: exchange.New(registry, completion, opts.Exchange),
		Archive:  archive.Open(opts.StoragePath),
	}
}

// Send runs the send protocol against the active session.
func (c *Client) Send(ctx context.Context, input string) error {
	return c.Exchange.Send(ctx, c.Registry.Active().ID, input)
}

// SaveActive freezes the active session into the archive. Sessions with no
// messages are a no-op.
func (c *Client) SaveActive() (*archive.Entry, error) {
	return c.Archive.Save(c.Registry.Active())
}

// LoadSaved installs an archive entry into the active session, overwriting
// its name and messages. The entry itself stays frozen.
func (c *Client) LoadSaved(entryID string) error {
	name, msgs, err := c.Archive.Load(entryID)
	if err != nil {
		return err
	}
	c.Registry.Active().Restore(name, msgs)
	return nil
}

// PinnedInActive returns the active session's pinned assistant messages.
func (c *Client) PinnedInActive() []chat.Message {
	return c.Pins.Pinned(c.Registry.Active())
}

// Close releases the archive's database handle.
func (c *Client) Close() error {
	return c.Archive.Close()
}
