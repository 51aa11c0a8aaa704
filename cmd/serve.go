package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"prompt_generator/config"
	"prompt_generator/generator"
	"prompt_generator/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt form on a local web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps := server.Deps{
				Copier: a.copier,
				Saver:  a.writer,
				OS:     a.runtime.OS,
				Logger: a.logger,
			}
			if a.cfg.LLM.Provider != "" {
				agent, err := buildAgent(a.cfg.LLM)
				if err != nil {
					return err
				}
				deps.Trier = agent
			}
			srv, err := server.New(deps)
			if err != nil {
				return err
			}

			listen := a.cfg.ServerAddr
			if addr != "" {
				listen = addr
			}
			if listen == "" {
				listen = config.DefaultServerAddr
			}

			httpSrv := &http.Server{
				Addr:              listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpSrv.Shutdown(shutdownCtx)
			}()

			a.logger.Info().
				Str("addr", "http://"+listen).
				Str("save_dir", a.runtime.SaveDir).
				Str("os", a.runtime.OS).
				Bool("try_enabled", deps.Trier != nil).
				Msg("starting prompt generator")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%w (check that %s is free)", err, listen)
			}
			a.logger.Info().Msg("shut down")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server_addr)")
	return cmd
}

func buildAgent(cfg config.LLMConfig) (*generator.Agent, error) {
	llm, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewAgent(llm, cfg.Model)
}

func buildLLM(cfg config.LLMConfig) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
	}
	switch cfg.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(settings)
	case "deepseek":
		// OpenAI-compatible API; the endpoint must be given explicitly.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
