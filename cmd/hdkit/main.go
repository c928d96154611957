// Command hdkit is a small wrapper around the hdwallet/mnemonic/addresses
// packages: generate mnemonics, derive seeds, walk derivation paths, and
// scan BIP-44/49/84 account chains from the command line.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/haeberli/hdkit/addresses"
	"github.com/haeberli/hdkit/hdwallet"
	"github.com/haeberli/hdkit/mnemonic"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "hdkit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("no command specified")
	}

	switch args[0] {
	case "generate":
		return handleGenerate(args[1:])
	case "seed":
		return handleSeed(args[1:])
	case "derive":
		return handleDerive(args[1:])
	case "wallet":
		return handleWallet(args[1:])
	case "parse":
		return handleParse(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	fmt.Println(`hdkit: hierarchical-deterministic key derivation toolkit

Usage:
  hdkit generate [--bits 128|160|192|224|256]
  hdkit seed --mnemonic "<words>" [--passphrase <pass>]
  hdkit derive --seed-hex <hex> --path m/44'/0'/0'/0/0 [--testnet]
  hdkit wallet --seed-hex <hex> --purpose bip44|bip49|bip84 [--coin-type 0] [--start 0] [--end 20] [--testnet]
  hdkit parse <extended-key>`)
}

func handleGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	bits := fs.Int("bits", 128, "entropy bits (128, 160, 192, 224, or 256)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	words, err := mnemonic.NewMnemonic(*bits)
	if err != nil {
		return err
	}
	fmt.Println(words)
	return nil
}

func handleSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	words := fs.String("mnemonic", "", "mnemonic sentence (required)")
	passphrase := fs.String("passphrase", "", "optional BIP-39 passphrase")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *words == "" {
		return errors.New("--mnemonic is required")
	}
	if err := mnemonic.ValidateMnemonic(*words); err != nil {
		return err
	}

	seed := mnemonic.SeedFromMnemonic(*words, *passphrase)
	fmt.Println(hex.EncodeToString(seed))
	return nil
}

func handleDerive(args []string) error {
	fs := flag.NewFlagSet("derive", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	seedHex := fs.String("seed-hex", "", "seed as hex (required)")
	path := fs.String("path", "m", "derivation path")
	testnet := fs.Bool("testnet", false, "use testnet version bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seedHex == "" {
		return errors.New("--seed-hex is required")
	}

	seed, err := hex.DecodeString(*seedHex)
	if err != nil {
		return fmt.Errorf("decoding --seed-hex: %w", err)
	}

	network := hdwallet.Mainnet
	if *testnet {
		network = hdwallet.Testnet
	}

	master, err := hdwallet.MasterFromSeed(seed, network)
	if err != nil {
		return err
	}

	isPrivateRoot, indices, err := hdwallet.ParsePath(*path)
	if err != nil {
		return err
	}
	if !isPrivateRoot {
		return errors.New("derive requires a private root (path must start with 'm')")
	}

	node, err := hdwallet.DerivePath(master, indices)
	if err != nil {
		return err
	}

	xprv, err := hdwallet.SerializeString(node, nil)
	if err != nil {
		return err
	}
	xpub, err := hdwallet.SerializeString(hdwallet.Neuter(node), nil)
	if err != nil {
		return err
	}

	fmt.Printf("path:    %s\n", node.String())
	fmt.Printf("xprv:    %s\n", xprv)
	fmt.Printf("xpub:    %s\n", xpub)
	return nil
}

func handleWallet(args []string) error {
	fs := flag.NewFlagSet("wallet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	seedHex := fs.String("seed-hex", "", "seed as hex (required)")
	purposeName := fs.String("purpose", "bip44", "bip44, bip49, or bip84")
	coinType := fs.Uint("coin-type", 0, "SLIP-44 coin type (default: 0, or 1 on testnet, unless set explicitly)")
	start := fs.Uint("start", 0, "first address index (inclusive)")
	end := fs.Uint("end", 20, "last address index (exclusive)")
	testnet := fs.Bool("testnet", false, "use testnet version/address bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *seedHex == "" {
		return errors.New("--seed-hex is required")
	}

	var explicitCoinType *uint32
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "coin-type" {
			v := uint32(*coinType)
			explicitCoinType = &v
		}
	})

	seed, err := hex.DecodeString(*seedHex)
	if err != nil {
		return fmt.Errorf("decoding --seed-hex: %w", err)
	}

	var purpose hdwallet.Purpose
	switch *purposeName {
	case "bip44":
		purpose = hdwallet.PurposeBIP44
	case "bip49":
		purpose = hdwallet.PurposeBIP49
	case "bip84":
		purpose = hdwallet.PurposeBIP84
	default:
		return fmt.Errorf("unknown --purpose %q", *purposeName)
	}

	network := hdwallet.Mainnet
	if *testnet {
		network = hdwallet.Testnet
	}

	master, err := hdwallet.MasterFromSeed(seed, network)
	if err != nil {
		return err
	}

	entries, err := hdwallet.DeriveAccountChain(master, purpose, explicitCoinType, uint32(*start), uint32(*end), addresses.Encoder{})
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%-24s %-40s %s\n", e.Path, e.Address, e.WIF)
	}
	return nil
}

func handleParse(args []string) error {
	if len(args) == 0 {
		return errors.New("extended key argument required")
	}
	node, err := hdwallet.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("network:  %s\n", node.Network())
	fmt.Printf("purpose:  %s\n", node.Purpose())
	fmt.Printf("private:  %v\n", node.IsPrivate())
	fmt.Printf("depth:    %s\n", strconv.Itoa(int(node.Depth())))
	fmt.Printf("index:    %d\n", node.Index())
	return nil
}
