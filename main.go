package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"notion_sync/generator"
	"notion_sync/notion"
	"notion_sync/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	file := flag.String("file", "", "input markdown file (default: stdin)")
	title := flag.String("title", "", "page title (create mode)")
	pageID := flag.String("page-id", "", "target page id (append mode)")
	parentID := flag.String("parent-id", "", "parent page id for nesting")
	emoji := flag.String("emoji", "", "page emoji icon (default: "+notion.DefaultEmoji+")")
	list := flag.Bool("list", false, "list pages and exit")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := notion.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client, err := notion.New(cfg, nil, verbose, log.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Web server mode
	if *serve {
		var agent *generator.Agent
		if llm, err := buildLLM(cfg); err != nil {
			log.Printf("[cli] drafting disabled: %v", err)
		} else if agent, err = generator.NewAgent(llm); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		srv, err := server.New(agent, client)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// List mode
	if *list {
		pages, err := client.ListPages(ctx, *parentID)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, p := range pages {
			fmt.Printf("%s %s\n   ID: %s\n\n", notion.DefaultEmoji, p.Title, p.ID)
		}
		return
	}

	if *title == "" && *pageID == "" {
		flag.Usage()
		os.Exit(1)
	}

	content, err := readContent(*file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Append mode
	if *pageID != "" {
		log.Printf("[cli] appending to page %s", *pageID)
		n, err := client.AppendBlocks(ctx, *pageID, content)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Appended %d blocks to %s\n", n, *pageID)
		return
	}

	// Create mode
	log.Printf("[cli] creating page title=%q", *title)
	page, err := client.CreatePage(ctx, notion.PageParams{
		Title:    *title,
		Emoji:    *emoji,
		ParentID: *parentID,
		Markdown: content,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Created: %s\n%s\n", *title, page.URL)
}

func readContent(path string) (string, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no content provided")
	}
	return string(data), nil
}

func buildLLM(cfg notion.Config) (generator.LLMClient, error) {
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; set llm.provider/model/api_key in config")
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API; base_url is required.
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
