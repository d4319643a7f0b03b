package main

import "testing"

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"version", "check", "cache", "manifest", "ledger"} {
		if !names[want] {
			t.Errorf("rootCmd missing subcommand %q", want)
		}
	}
}

func TestCacheSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range cacheCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"stats", "clear"} {
		if !names[want] {
			t.Errorf("cacheCmd missing subcommand %q", want)
		}
	}
}

func TestLedgerSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range ledgerCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "show"} {
		if !names[want] {
			t.Errorf("ledgerCmd missing subcommand %q", want)
		}
	}
}

func TestManifestSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range manifestCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "verify"} {
		if !names[want] {
			t.Errorf("manifestCmd missing subcommand %q", want)
		}
	}
}
