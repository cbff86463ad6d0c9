package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//   - estimators: List of available estimator names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, estimators []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, estimators)
	case "zsh":
		return generateZshCompletion(out, estimators)
	case "fish":
		return generateFishCompletion(out, estimators)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
}

func generateBashCompletion(out io.Writer, estimators []string) error {
	script := `# Bash completion script for sqrtcalc
# Add this to your ~/.bashrc or ~/.bash_completion

_sqrtcalc_completions() {
    local cur prev opts estimators
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -a -v --precision --max-steps --target-digits --algo --timeout --log --json --quiet -q --output -o --no-color --interactive --completion --log-level --cache-size"

    estimators="%s all"

    case "${prev}" in
        --algo|-algo)
            COMPREPLY=( $(compgen -W "${estimators}" -- "${cur}") )
            return 0
            ;;
        --completion|-completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
            return 0
            ;;
        --log-level|-log-level)
            COMPREPLY=( $(compgen -W "debug info warn error disabled" -- "${cur}") )
            return 0
            ;;
        --output|-output|-o)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        --timeout|-timeout)
            COMPREPLY=( $(compgen -W "10s 30s 1m 5m 10m" -- "${cur}") )
            return 0
            ;;
        --precision|-precision|--target-digits|-target-digits)
            COMPREPLY=( $(compgen -W "50 100 200 500 1000" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _sqrtcalc_completions sqrtcalc
`
	_, err := fmt.Fprintf(out, script, strings.Join(estimators, " "))
	return err
}

func generateZshCompletion(out io.Writer, estimators []string) error {
	script := `#compdef sqrtcalc

# Zsh completion script for sqrtcalc
# Add this to your ~/.zshrc or place in $fpath

_sqrtcalc() {
    local -a estimators
    estimators=(%s all)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '-a[Value whose square root is computed]:value:' \
        '-v[Print iteration values in full]' \
        '--precision[Significant decimal digits]:digits:(50 100 200 500 1000)' \
        '--max-steps[Maximum number of Newton steps]:steps:' \
        '--target-digits[Correct digits at which to stop]:digits:(50 100 200 500 1000)' \
        '--algo[Initial guess estimator]:estimator:($estimators)' \
        '--timeout[Maximum execution time]:duration:(10s 30s 1m 5m 10m)' \
        '--log[Print the iteration log]' \
        '--json[Output in JSON format]' \
        '(-q --quiet)'{-q,--quiet}'[Print only the result]' \
        '(-o --output)'{-o,--output}'[Output file path]:file:_files' \
        '--no-color[Disable colored output]' \
        '--interactive[Start interactive REPL mode]' \
        '--completion[Generate completion script]:shell:(bash zsh fish)' \
        '--log-level[Diagnostic log level]:level:(debug info warn error disabled)' \
        '--cache-size[REPL cache capacity]:size:'
}

_sqrtcalc "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(estimators, " "))
	return err
}

func generateFishCompletion(out io.Writer, estimators []string) error {
	script := `# Fish completion script for sqrtcalc
# Add this to ~/.config/fish/completions/sqrtcalc.fish

complete -c sqrtcalc -f

complete -c sqrtcalc -s h -l help -d 'Show help message'
complete -c sqrtcalc -s V -l version -d 'Show version information'

complete -c sqrtcalc -s a -d 'Value whose square root is computed' -x
complete -c sqrtcalc -s v -d 'Print iteration values in full'
complete -c sqrtcalc -l precision -d 'Significant decimal digits' -xa '50 100 200 500 1000'
complete -c sqrtcalc -l max-steps -d 'Maximum number of Newton steps' -x
complete -c sqrtcalc -l target-digits -d 'Correct digits at which to stop' -xa '50 100 200 500 1000'
complete -c sqrtcalc -l algo -d 'Initial guess estimator' -xa '%s all'
complete -c sqrtcalc -l timeout -d 'Maximum execution time' -xa '10s 30s 1m 5m 10m'

complete -c sqrtcalc -l log -d 'Print the iteration log'
complete -c sqrtcalc -l json -d 'Output in JSON format'
complete -c sqrtcalc -s q -l quiet -d 'Print only the result'
complete -c sqrtcalc -s o -l output -d 'Output file path' -rF
complete -c sqrtcalc -l no-color -d 'Disable colored output'

complete -c sqrtcalc -l interactive -d 'Start interactive REPL mode'
complete -c sqrtcalc -l completion -d 'Generate completion script' -xa 'bash zsh fish'
complete -c sqrtcalc -l log-level -d 'Diagnostic log level' -xa 'debug info warn error disabled'
complete -c sqrtcalc -l cache-size -d 'REPL cache capacity' -x
`
	_, err := fmt.Fprintf(out, script, strings.Join(estimators, " "))
	return err
}
