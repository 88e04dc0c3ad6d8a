package file

import (
	"errors"
	"strings"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/ply/internal/modules"
	"golang.org/x/sys/unix"
)

const selinuxXattr = "security.selinux"

// seContext holds the requested SELinux context fields. Unset fields
// keep the current value on the target.
type seContext struct {
	user  string
	role  string
	typ   string
	level string
}

func (c *seContext) parse(args domain.Vars) error {
	var err error
	if c.user, _, err = modules.StringArg(args, "seuser"); err != nil {
		return err
	}
	if c.role, _, err = modules.StringArg(args, "serole"); err != nil {
		return err
	}
	if c.typ, _, err = modules.StringArg(args, "setype"); err != nil {
		return err
	}
	c.level, _, err = modules.StringArg(args, "selevel")
	return err
}

func (c *seContext) empty() bool {
	return c.user == "" && c.role == "" && c.typ == "" && c.level == ""
}

// apply converges the security.selinux xattr. Filesystems without
// SELinux support are skipped silently, reporting changed=false.
func (c *seContext) apply(path string, check bool) (bool, error) {
	if c.empty() {
		return false, nil
	}

	current, supported, err := getFileContext(path)
	if err != nil {
		return false, err
	}
	if !supported {
		return false, nil
	}

	want := c.merge(current)
	if want == current {
		return false, nil
	}

	if !check {
		if err := unix.Lsetxattr(path, selinuxXattr, []byte(want+"\x00"), 0); err != nil {
			return false, pathErr(err, "failed to set selinux context", path)
		}
	}
	return true, nil
}

// merge overlays the requested fields onto the current
// user:role:type:level context string.
func (c *seContext) merge(current string) string {
	parts := strings.SplitN(strings.TrimRight(current, "\x00"), ":", 4)
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	if c.user != "" {
		parts[0] = c.user
	}
	if c.role != "" {
		parts[1] = c.role
	}
	if c.typ != "" {
		parts[2] = c.typ
	}
	if c.level != "" {
		parts[3] = c.level
	}
	return strings.Join(parts, ":")
}

func getFileContext(path string) (ctx string, supported bool, err error) {
	buf := make([]byte, 256)
	n, err := unix.Lgetxattr(path, selinuxXattr, buf)
	if err != nil {
		if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.ENODATA) || errors.Is(err, unix.EOPNOTSUPP) {
			return "", false, nil
		}
		return "", false, pathErr(err, "failed to read selinux context", path)
	}
	return strings.TrimRight(string(buf[:n]), "\x00"), true, nil
}
