package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/vaultkeep/internal/client/api"
	"github.com/dmitrijs2005/vaultkeep/internal/client/config"
)

type App struct {
	config *config.Config
	api    *api.Client
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)

	return &App{
		config: c,
		api:    apiClient,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

// getStatus renders the prompt suffix: the user name when logged in.
func (a *App) getStatus() string {
	if name := a.api.Username(); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to Vaultkeep CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
