package report

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayTagged displays a message prefixed by a highlighted tag.
func displayTagged(tagStyle *pterm.Style, msgColor pterm.Color, tag, message string) {
	fmt.Fprintln(rep.out, tagStyle.Sprint(" "+tag+" ")+" "+msgColor.Sprint(message))
}

// displayICE displays an internal error message.
func displayICE(message string) {
	displayTagged(ErrorStyleBG, ErrorColorFG, "internal error", message)
	fmt.Fprint(rep.out, "This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	displayTagged(ErrorStyleBG, ErrorColorFG, "fatal error", message)
	fmt.Fprintln(rep.out)
}

// displayStdError displays a standard Go error.  Wrapped errors are displayed
// one cause per line.
func displayStdError(path string, err error) {
	causes := strings.Split(err.Error(), ": ")

	displayTagged(ErrorStyleBG, ErrorColorFG, "error", fmt.Sprintf("%s: %s", path, causes[0]))
	for _, cause := range causes[1:] {
		fmt.Fprintln(rep.out, "  "+ErrorColorFG.Sprint(cause))
	}

	fmt.Fprintln(rep.out)
}

// displayWarning displays a warning message.
func displayWarning(path, message string) {
	displayTagged(WarnStyleBG, WarnColorFG, "warning", fmt.Sprintf("%s: %s", path, message))
}

// displayInfo displays an informational message.
func displayInfo(tag, message string) {
	displayTagged(InfoStyleBG, InfoColorFG, tag, message)
}
