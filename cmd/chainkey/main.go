// Package main provides the chainkey CLI tool for deriving wallet records
// from a mnemonic phrase.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/term"
	lang "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/complex-gh/chainkey"
	"github.com/complex-gh/chainkey/hashchain"
	"github.com/complex-gh/chainkey/hdkey"
	"github.com/complex-gh/chainkey/mnemonic"
	"github.com/complex-gh/chainkey/secret"
)

const (
	maxWidth = 72
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd

	language      string
	keyTypeName   string
	hashNames     string
	accountIndex  uint32
	changeIndex   uint32
	addressIndex  uint32
	walletCount   int
	askPassphrase bool
	showSecrets   bool

	rootCmd = &cobra.Command{
		Use:   "chainkey <mnemonic>",
		Short: "Derive wallet records from a mnemonic phrase",
		Long: `Derive wallet records from a mnemonic phrase.

Each wallet is derived at m/44'/1110'/<account>'/<change>'/<index>' for the
selected curve (ed25519 or ed448) and hash chain, and printed with its
public key identifier, address, and extended keys. Every path component is
derived hardened; public-only child derivation does not exist on this chain.

SECURITY TIP: Add a space before the command to prevent it from being
saved in your shell history. For example:
    chainkey "abandon abandon ... about"
    ^ (note the leading space)
Most shells (bash, zsh) are configured to ignore commands that start
with a space. Check your HISTCONTROL or HIST_IGNORE_SPACE settings.`,
		Example: `  chainkey "abandon abandon ... about"
  chainkey "abandon abandon ... about" --key-type ed448
  chainkey "abandon abandon ... about" --hash sha256,sha3 --count 5
  chainkey "abandon abandon ... about" --account 2 --index 10 --secrets
  chainkey --passphrase < phrase.txt`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no arguments provided and stdin is not a pipe, show help
			if len(args) == 0 {
				if fi, _ := os.Stdin.Stat(); (fi.Mode() & os.ModeNamedPipe) == 0 {
					return cmd.Help()
				}
			}

			if err := setLanguage(language); err != nil {
				return err
			}

			phrase, err := readPhrase(args)
			if err != nil {
				return err
			}
			if !mnemonic.IsValid(phrase) {
				return formatPhraseError(fmt.Errorf("the phrase is not a valid mnemonic in the %q word list", language))
			}

			opts, err := buildOptions()
			if err != nil {
				return err
			}

			var passphrase []byte
			if askPassphrase {
				passphrase, err = readPassword("Enter the mnemonic passphrase: ")
				if err != nil {
					return err
				}
				defer secret.Wipe(passphrase)
			}

			wallets, err := chainkey.DeriveWalletsFromMnemonic(phrase, string(passphrase), opts, walletCount)
			if err != nil {
				return fmt.Errorf("could not derive wallets: %w", err)
			}
			printWallets(wallets)
			return nil
		},
	}

	wordCount int

	newCmd = &cobra.Command{
		Use:   "new",
		Short: "Generate a fresh mnemonic phrase",
		Long: `Generate a fresh mnemonic phrase with cryptographically secure entropy.

Valid word counts are: 12, 15, 18, 21, or 24.`,
		Example: `  chainkey new
  chainkey new --words 12
  chainkey new --language spanish`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := setLanguage(language); err != nil {
				return err
			}

			bits, ok := map[int]int{12: 128, 15: 160, 18: 192, 21: 224, 24: 256}[wordCount]
			if !ok {
				return fmt.Errorf("invalid word count: %d (must be 12, 15, 18, 21, or 24)", wordCount)
			}

			phrase, err := mnemonic.New(bits)
			if err != nil {
				return fmt.Errorf("could not generate mnemonic: %w", err)
			}
			fmt.Println(phrase)
			return nil
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex (complex@ft.hn)\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion script",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "en", "Language")
	rootCmd.Flags().StringVarP(&keyTypeName, "key-type", "k", "ed25519", "Signature curve (ed25519 or ed448)")
	rootCmd.Flags().StringVar(&hashNames, "hash", "sha3", "Address hash chain, applied in order (comma-separated: sha256,blake2b,sha3)")
	rootCmd.Flags().Uint32Var(&accountIndex, "account", 0, "Account path component")
	rootCmd.Flags().Uint32Var(&changeIndex, "change", 0, "Change path component")
	rootCmd.Flags().Uint32Var(&addressIndex, "index", 0, "First address index")
	rootCmd.Flags().IntVarP(&walletCount, "count", "n", 1, "Number of sequential wallets to derive")
	rootCmd.Flags().BoolVar(&askPassphrase, "passphrase", false, "Prompt for a mnemonic passphrase")
	rootCmd.Flags().BoolVar(&showSecrets, "secrets", false, "Also print private keys and extended private keys")
	newCmd.Flags().IntVarP(&wordCount, "words", "w", 24, "Word count (12, 15, 18, 21, or 24)")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readPhrase joins the positional arguments into a phrase, or reads the
// phrase from a stdin pipe when no arguments are given.
func readPhrase(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	bts, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read phrase from stdin: %w", err)
	}
	return strings.TrimSpace(string(bts)), nil
}

// buildOptions translates the flag values into derivation options.
func buildOptions() (chainkey.Options, error) {
	keyType, err := hdkey.ParseCurve(keyTypeName)
	if err != nil {
		return chainkey.Options{}, fmt.Errorf("invalid --key-type: %w", err)
	}

	var algs []hashchain.Alg
	for _, name := range strings.Split(hashNames, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		alg, err := hashchain.ParseAlg(name)
		if err != nil {
			return chainkey.Options{}, fmt.Errorf("invalid --hash: %w", err)
		}
		algs = append(algs, alg)
	}
	if len(algs) == 0 {
		return chainkey.Options{}, fmt.Errorf("invalid --hash: at least one algorithm is required")
	}

	return chainkey.Options{
		KeyType:   keyType,
		HashTypes: algs,
		Account:   accountIndex,
		Change:    changeIndex,
		Index:     addressIndex,
	}, nil
}

// printWallets displays derived wallets in a fixed order: identifier and
// address first, then extended public key, then secrets when requested.
func printWallets(wallets []*chainkey.Wallet) {
	for i, w := range wallets {
		fmt.Printf("[wallet at %s]\n", w.Path)
		fmt.Println()
		fmt.Printf("%s (public key identifier)\n", w.PublicKeyIdentifier)
		fmt.Printf("%s (address)\n", w.Address)
		fmt.Printf("%s (extended public key)\n", w.ExtendedPublicKey)
		fmt.Printf("%x (fingerprint)\n", w.Fingerprint)

		if showSecrets {
			fmt.Printf("%s (private key)\n", w.PrivateKey)
			fmt.Printf("%s (extended private key)\n", w.ExtendedPrivateKey)
		}

		if i < len(wallets)-1 {
			fmt.Println()
		}
	}
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// formatPhraseError formats an invalid-mnemonic error as a styled block,
// similar to the plain error output but easier to spot, and returns a simple
// error so the command exits with a non-zero code.
func formatPhraseError(err error) error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, err.Error())
		b.WriteRune('\n')

		fmt.Print(b.String())
	}
	// Return a simple error message (cobra may print this to stderr, but the styled
	// version has already been shown)
	return fmt.Errorf("a valid mnemonic phrase is required")
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}

// setLanguage sets the language of the bip39 mnemonic word list.
func setLanguage(language string) error {
	list := getWordlist(language)
	if list == nil {
		return fmt.Errorf("this language is not supported")
	}
	bip39.SetWordList(list)
	return nil
}

func sanitizeLang(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

var wordLists = map[lang.Tag][]string{
	lang.Chinese:              wordlists.ChineseSimplified,
	lang.SimplifiedChinese:    wordlists.ChineseSimplified,
	lang.TraditionalChinese:   wordlists.ChineseTraditional,
	lang.Czech:                wordlists.Czech,
	lang.AmericanEnglish:      wordlists.English,
	lang.BritishEnglish:       wordlists.English,
	lang.English:              wordlists.English,
	lang.French:               wordlists.French,
	lang.Italian:              wordlists.Italian,
	lang.Japanese:             wordlists.Japanese,
	lang.Korean:               wordlists.Korean,
	lang.Spanish:              wordlists.Spanish,
	lang.EuropeanSpanish:      wordlists.Spanish,
	lang.LatinAmericanSpanish: wordlists.Spanish,
}

func getWordlist(language string) []string {
	language = sanitizeLang(language)
	tag := lang.Make(language)
	en := display.English.Languages() // default language name matcher
	for t := range wordLists {
		if sanitizeLang(en.Name(t)) == language {
			tag = t
			break
		}
	}
	if tag == lang.Und { // Unknown language
		return nil
	}
	base, _ := tag.Base()
	btag := lang.MustParse(base.String())
	wl := wordLists[tag]
	if wl == nil {
		return wordLists[btag]
	}
	return wl
}

func readPassword(msg string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, msg)
	defer fmt.Fprintf(os.Stderr, "\n")
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                     //nolint: errcheck
	pass, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("could not read passphrase: %w", err)
	}
	return pass, nil
}
