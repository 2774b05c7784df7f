//go:build windows

package config

const (
	DefaultCommand = `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`
	DefaultLogFile = `C:\Temp\service.log`
)

var defaultArguments = []string{
	"-ExecutionPolicy",
	"Bypass",
	"-File",
	`C:\Temp\service.ps1`,
}
