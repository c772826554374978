package cli

import (
	"fmt"

	"github.com/diillson/erp-reports/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         _____ ____  ____    ____                       _
        | ____|  _ \|  _ \  |  _ \ ___ _ __   ___  _ __| |_ ___
        |  _| | |_) | |_) | | |_) / _ \ '_ \ / _ \| '__| __/ __|
        | |___|  _ <|  __/  |  _ <  __/ |_) | (_) | |  | |_\__ \
        |_____|_| \_\_|     |_| \_\___| .__/ \___/|_|   \__|___/
                                      |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("ERP Reports CLI (v%s)", formattedVersion)))
}
