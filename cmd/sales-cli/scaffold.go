// cmd/sales-cli/scaffold.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"sales-workers/pkg/registry"

	"github.com/spf13/cobra"
)

// workerData feeds the scaffold templates.
type workerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Category     string
	Description  string
	Timeout      string
	InputFields  []field
	OutputFields []field
	ErrorCodes   []string
}

type field struct {
	GoName  string
	GoType  string
	JSONTag string
	Comment string
}

func newScaffoldCmd(root *rootOptions) *cobra.Command {
	var (
		registryPath string
		outputDir    string
		force        bool
	)

	cmd := &cobra.Command{
		Use:     "scaffold <activity-id>",
		Short:   "Generate a worker package for a registered activity",
		Example: `  sales-cli scaffold data.alias.forget`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return err
			}
			var activity *registry.Activity
			for i := range reg.Activities {
				if reg.Activities[i].ID == args[0] {
					activity = &reg.Activities[i]
					break
				}
			}
			if activity == nil {
				return fmt.Errorf("activity %q not found in %s", args[0], registryPath)
			}
			return scaffoldWorker(cmd.OutOrStdout(), root, *activity, outputDir, force)
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "activity registry path")
	cmd.Flags().StringVar(&outputDir, "output", "internal/workers", "workers root directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")

	return cmd
}

func scaffoldWorker(out io.Writer, root *rootOptions, a registry.Activity, outputDir string, force bool) error {
	data := workerData{
		Name:         a.DisplayName,
		PackageName:  packageName(a.TaskType),
		TaskType:     a.TaskType,
		Category:     a.Category,
		Description:  a.Description,
		Timeout:      a.Timeout,
		InputFields:  schemaFields(a.InputSchema),
		OutputFields: schemaFields(a.OutputSchema),
		ErrorCodes:   a.ErrorCodes,
	}
	if data.Name == "" {
		data.Name = a.TaskType
	}
	if data.Timeout == "" {
		data.Timeout = "5s"
	}

	dir := filepath.Join(outputDir, categoryDir(a.Category), a.TaskType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	p := newPrinter(out, root)
	files := []struct {
		name string
		tmpl *template.Template
	}{
		{"config.go", configTmpl},
		{"models.go", modelsTmpl},
		{"handler.go", handlerTmpl},
		{"handler_test.go", handlerTestTmpl},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s exists, use --force to overwrite", path)
		}

		var buf strings.Builder
		if err := f.tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("render %s: %w", f.name, err)
		}
		if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
			return err
		}
		p.Success("generated %s", path)
	}

	fmt.Fprintf(out, "\nRegister %s.TaskType in cmd/worker-manager and add a workers.%s block to configs/config.yaml.\n",
		data.PackageName, a.TaskType)
	return nil
}

func packageName(taskType string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "", ".", "").Replace(taskType))
}

func categoryDir(category string) string {
	switch category {
	case "", "sales":
		return "sales"
	case "ai", "ai-ml":
		return "ai-conversation"
	default:
		return strings.ToLower(category)
	}
}

// schemaFields turns the top-level properties of a JSON schema into struct
// fields, sorted by name.
func schemaFields(schema map[string]interface{}) []field {
	props, _ := schema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		f := field{
			GoName:  exportedName(name),
			GoType:  goType(details["type"]),
			JSONTag: fmt.Sprintf("`json:\"%s,omitempty\"`", name),
		}
		if desc, ok := details["description"].(string); ok {
			f.Comment = desc
		}
		fields = append(fields, f)
	}
	return fields
}

// goType maps a JSON schema type, or the first non-null entry of a type
// list, to a Go type.
func goType(t interface{}) string {
	if list, ok := t.([]interface{}); ok {
		for _, entry := range list {
			if s, ok := entry.(string); ok && s != "null" {
				return goType(s)
			}
		}
		return "interface{}"
	}
	switch t {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

func exportedName(s string) string {
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "Id") {
		s = strings.TrimSuffix(s, "Id") + "ID"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var configTmpl = template.Must(template.New("config").Parse(`// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	timeout, err := time.ParseDuration("{{ .Timeout }}")
	if err != nil {
		timeout = 5 * time.Second
	}
	return &Config{Timeout: timeout}
}
`))

var modelsTmpl = template.Must(template.New("models").Parse(`// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .GoName }} {{ .GoType }} {{ .JSONTag }}{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .GoName }} {{ .GoType }} {{ .JSONTag }}{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
}
`))

var handlerTmpl = template.Must(template.New("handler").Parse(`// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "{{ .TaskType }}"
)

{{ if .Description }}// Handler: {{ .Description }}
{{ end }}type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	taskLogger := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       taskLogger,
		errorHandler: errors.NewErrorHandler(taskLogger),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewInvalidInputError(err.Error()))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(output)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}
`))

var handlerTestTmpl = template.Must(template.New("handler_test").Parse(`package {{ .PackageName }}

import (
	"context"
	"testing"

	"sales-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, output)
}
`))
