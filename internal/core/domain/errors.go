package domain

import "go.trai.ch/zerr"

var (
	// ErrPlaybookNotFound is returned when a playbook path does not exist.
	ErrPlaybookNotFound = zerr.New("playbook not found")

	// ErrPlaybookReadFailed is returned when a playbook file cannot be read.
	ErrPlaybookReadFailed = zerr.New("failed to read playbook")

	// ErrPlaybookParseFailed is returned when a playbook is not valid YAML.
	ErrPlaybookParseFailed = zerr.New("failed to parse playbook")

	// ErrPlaybookInvalid is returned when a playbook fails schema validation.
	ErrPlaybookInvalid = zerr.New("playbook failed syntax check")

	// ErrUnknownModule is returned when a task references a module that is not registered.
	ErrUnknownModule = zerr.New("unknown module")

	// ErrAmbiguousAction is returned when a task declares more than one module.
	ErrAmbiguousAction = zerr.New("task declares more than one module")

	// ErrMissingAction is returned when a task declares no module at all.
	ErrMissingAction = zerr.New("task declares no module")

	// ErrUnknownHandler is returned when a task notifies a handler that is not defined.
	ErrUnknownHandler = zerr.New("notified handler is not defined")

	// ErrInventoryNotFound is returned when the inventory file does not exist.
	ErrInventoryNotFound = zerr.New("inventory not found")

	// ErrInventoryParseFailed is returned when the inventory cannot be parsed.
	ErrInventoryParseFailed = zerr.New("failed to parse inventory")

	// ErrEmptyInventory is returned when the inventory resolves to no hosts.
	ErrEmptyInventory = zerr.New("inventory contains no hosts")

	// ErrNoHostsMatched is returned when a play's host pattern selects nothing.
	ErrNoHostsMatched = zerr.New("no hosts matched")

	// ErrHostsFailed is returned after the recap when at least one host reported failures.
	ErrHostsFailed = zerr.New("run finished with failed hosts")

	// ErrHostsUnreachable is returned after the recap when hosts were unreachable but none failed.
	ErrHostsUnreachable = zerr.New("run finished with unreachable hosts")

	// ErrStartTaskNotFound is returned when --start-at-task names no task in the playbook.
	ErrStartTaskNotFound = zerr.New("start-at task not found")

	// ErrRunAborted is returned when the operator aborts a stepped run.
	ErrRunAborted = zerr.New("run aborted by operator")

	// ErrUnknownFileState is returned when a declared file state is not recognized.
	ErrUnknownFileState = zerr.New("unknown file state")

	// ErrPathRequired is returned when the file module is invoked without a path.
	ErrPathRequired = zerr.New("path is required")

	// ErrSrcRequired is returned when a link state is declared without src.
	ErrSrcRequired = zerr.New("src is required for link states")

	// ErrCreateFileRefused is returned when state=file targets a missing
	// path; plain file creation is the copy module's job.
	ErrCreateFileRefused = zerr.New("refusing to create file, use the copy module")

	// ErrConversionRefused is returned when converging would convert a
	// node to an incompatible type without force.
	ErrConversionRefused = zerr.New("refusing to convert between file states")

	// ErrVarsParseFailed is returned when an --extra-vars argument cannot be parsed.
	ErrVarsParseFailed = zerr.New("failed to parse extra vars")

	// ErrUndefinedVariable is returned when interpolation references a variable no layer defines.
	ErrUndefinedVariable = zerr.New("undefined variable")

	// ErrDefaultsParseFailed is returned when the runner defaults file cannot be parsed.
	ErrDefaultsParseFailed = zerr.New("failed to parse runner defaults")

	// ErrRetryWriteFailed is returned when the retry inventory cannot be written.
	ErrRetryWriteFailed = zerr.New("failed to write retry inventory")

	// ErrModuleArgInvalid is returned when a module argument has the wrong shape.
	ErrModuleArgInvalid = zerr.New("invalid module argument")
)
