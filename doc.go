// Package pullweights provides a client and transfer engine for the
// PullWeights model registry.
//
// The package has two layers. Client is a stateless façade over the
// registry's REST API: search, org and model listings, manifests, tags,
// pull plans, push sessions, and raw blob transfers against pre-signed
// storage URLs. Transfer orchestrates the multi-step operations on top of
// it: pull (download every file of a version, verify each SHA-256 before
// writing) and push (hash local files, init a session, upload each blob,
// finalize).
//
// The cmd/pullweights-mcp binary wraps both layers as an MCP stdio server
// so LLM clients can call the registry as tools; the same handlers back its
// direct CLI subcommands.
//
// # Basic Usage
//
// Construct a Client from explicit configuration; nothing reads the
// environment except ConfigFromEnv, which entrypoints call once:
//
//	client := pullweights.NewClient(pullweights.ConfigFromEnv())
//	page, err := client.Search(ctx, pullweights.SearchQuery{Query: "llama", PerPage: 5})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range page.Results {
//	    fmt.Printf("%s/%s\n", m.Org, m.Name)
//	}
//
// # Pulling a Model
//
//	ref, err := pullweights.ParseModelRef("acme/resnet:v2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	transfer := pullweights.NewTransfer(client)
//	report, err := transfer.Pull(ctx, ref, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("downloaded to", report.Dir)
//
// Each file is verified against its declared digest before it is written;
// a mismatch aborts the pull with an *IntegrityError naming the file and
// both digests.
//
// # Pushing a Version
//
// Push references must carry an explicit tag, so they parse through
// ParsePushRef:
//
//	ref, err := pullweights.ParsePushRef("acme/resnet:v3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := transfer.Push(ctx, ref, []string{"model.bin", "config.json"},
//	    pullweights.PushMeta{Visibility: "public"})
//
// A push is three phases, each a distinct round trip: init sends the file
// descriptors and returns one upload target per file, upload PUTs each
// file's bytes to its pre-signed URL, finalize commits the session. If any
// upload fails the push is abandoned and finalize is never called.
//
// # Errors
//
// Failures are typed: ErrAuthRequired for a missing credential (checked
// before any network use), *RequestError for non-2xx API responses,
// *TransferError for failed blob transfers, *IntegrityError for digest
// mismatches, and *ProtocolError when a registry response breaks the
// protocol contract. Nothing is retried; the first failure aborts the
// operation.
//
// # Logging
//
// The package is silent by default. Pass WithLogger / WithTransferLogger
// an *slog.Logger for debug output:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	client := pullweights.NewClient(cfg, pullweights.WithLogger(logger))
package pullweights
