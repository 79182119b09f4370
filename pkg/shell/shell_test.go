package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/abook/pkg/core"
	"github.com/aretw0/abook/pkg/shell"
)

// memRepository keeps the last saved book in memory.
type memRepository struct {
	saved   *core.AddressBook
	saves   int
	saveErr error
}

func (m *memRepository) Initialize(context.Context) error { return nil }

func (m *memRepository) Load(context.Context) (*core.AddressBook, error) {
	if m.saved == nil {
		return core.NewAddressBook(), nil
	}
	return m.saved, nil
}

func (m *memRepository) Save(_ context.Context, book *core.AddressBook) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = book
	m.saves++
	return nil
}

func run(t *testing.T, repo *memRepository, input string, opts ...shell.Option) (string, error) {
	t.Helper()
	svc := core.NewService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))

	var out bytes.Buffer
	err := shell.New(svc, strings.NewReader(input), &out, opts...).Run(context.Background())
	return out.String(), err
}

func TestShell(t *testing.T) {
	t.Run("Add Find Show Quit", func(t *testing.T) {
		repo := &memRepository{}
		out, err := run(t, repo, strings.Join([]string{
			"add Jan Kowalski; 123456789, 987654321; jan@example.com",
			"a Anna Nowak",
			"find kowal",
			"show",
			"q",
		}, "\n"))
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Record added."))
		assert.Contains(t, out, "Name: Jan Kowalski, Phones: 123456789, 987654321, Email: jan@example.com\n")
		assert.Contains(t, out, "Name: Anna Nowak, Phones: , Email: \n")
		assert.Contains(t, out, "Address book saved.")
		require.NotNil(t, repo.saved)
		assert.Equal(t, []string{"Jan Kowalski", "Anna Nowak"}, repo.saved.Names())
	})

	t.Run("Invalid Input Does Not Stop The Loop", func(t *testing.T) {
		repo := &memRepository{}
		out, err := run(t, repo, "add Bad; 12345\nadd Good; 123456789\nquit\n")
		require.NoError(t, err)

		assert.Contains(t, out, `Error: invalid phone number "12345"`)
		assert.Equal(t, []string{"Good"}, repo.saved.Names())
	})

	t.Run("Edit Commands", func(t *testing.T) {
		repo := &memRepository{}
		out, err := run(t, repo, strings.Join([]string{
			"add Jan Kowalski; 123456789; jan@example.com",
			"edit Jan Kowalski => Jan Nowak",
			"phone Jan Nowak 123456789 => 111111111",
			"email Jan Nowak jan@example.com => jn@example.com",
			"phone Jan Nowak 999999999 => 222222222",
			"e Ghost => Someone",
			"show",
		}, "\n"))
		require.NoError(t, err)

		assert.Contains(t, out, "Record updated.")
		assert.Contains(t, out, "Phone number updated.")
		assert.Contains(t, out, "Email address updated.")
		assert.Contains(t, out, `Error: not found: phone "999999999"`)
		assert.Contains(t, out, `Error: not found: contact "Ghost"`)
		assert.Contains(t, out, "Name: Jan Nowak, Phones: 111111111, Email: jn@example.com")
	})

	t.Run("Delete", func(t *testing.T) {
		repo := &memRepository{}
		out, err := run(t, repo, "add Ann\nd Ann\ndelete Ann\n")
		require.NoError(t, err)

		assert.Contains(t, out, "Record deleted: Ann.")
		assert.Contains(t, out, "No record with the name Ann exists.")
	})

	t.Run("Empty Book And Unknown Command", func(t *testing.T) {
		out, err := run(t, &memRepository{}, "p\nfind x\nfly\nfind\n")
		require.NoError(t, err)

		assert.Contains(t, out, "Address book is empty.")
		assert.Contains(t, out, "No records found.")
		assert.Contains(t, out, `Unknown command "fly"`)
		assert.Contains(t, out, "usage: find TERM")
	})

	t.Run("Malformed Edit Shows Usage", func(t *testing.T) {
		out, err := run(t, &memRepository{}, "edit Ann\nphone Ann => 123456789\n")
		require.NoError(t, err)

		assert.Contains(t, out, "usage: edit OLD NAME => NEW NAME")
		assert.Contains(t, out, "usage: phone NAME OLD => NEW")
	})

	t.Run("Nothing Saved Without Changes", func(t *testing.T) {
		repo := &memRepository{}
		_, err := run(t, repo, "show\nquit\n")
		require.NoError(t, err)
		assert.Equal(t, 0, repo.saves)
	})

	t.Run("Explicit Save", func(t *testing.T) {
		repo := &memRepository{}
		out, err := run(t, repo, "add Ann\nsave\nquit\n")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.saves, "quit after save has nothing left to write")
		assert.Contains(t, out, "Address book saved.")
	})

	t.Run("End Of Input Saves", func(t *testing.T) {
		repo := &memRepository{}
		_, err := run(t, repo, "add Ann")
		require.NoError(t, err)
		assert.Equal(t, 1, repo.saves)
	})

	t.Run("Save Error On Quit Is Returned", func(t *testing.T) {
		boom := errors.New("disk full")
		repo := &memRepository{saveErr: boom}
		_, err := run(t, repo, "add Ann\nq\nadd Never\n")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("Save Error On Save Command Is Printed", func(t *testing.T) {
		repo := &memRepository{saveErr: core.ErrReadOnly}
		out, err := run(t, repo, "add Ann\ns\n")
		assert.ErrorIs(t, err, core.ErrReadOnly, "the final save still fails")
		assert.Contains(t, out, "Error: address book is in read-only mode")
	})

	t.Run("Prompt", func(t *testing.T) {
		out, err := run(t, &memRepository{}, "help\n", shell.WithPrompt(shell.DefaultPrompt))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, shell.DefaultPrompt+"Commands:"))
		assert.Equal(t, 2, strings.Count(out, shell.DefaultPrompt))
	})
}

func TestShellCancelled(t *testing.T) {
	repo := &memRepository{}
	svc := core.NewService(repo, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shell.New(svc, strings.NewReader("add Ann\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.saves)
}

func TestShellCancelledWhileReading(t *testing.T) {
	repo := &memRepository{}
	svc := core.NewService(repo, nil)
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- shell.New(svc, in, &bytes.Buffer{}).Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked on input after cancel")
	}
	assert.Equal(t, 0, repo.saves)
}
