package vcs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/toyz/testgen/internal/errors"
	"github.com/toyz/testgen/internal/logger"
	"github.com/toyz/testgen/internal/utils"
	"github.com/toyz/testgen/internal/utils/fileops"
)

// DefaultCompareRef is the revision changes are measured against when none is given
const DefaultCompareRef = "HEAD~1"

// generatedTestExtension is always stageable, whatever the module extensions are
const generatedTestExtension = ".tsx"

// Repository answers version-control queries about the repository enclosing a path
type Repository struct {
	repo       *git.Repository
	worktree   *git.Worktree
	root       string
	extensions []string
	files      *fileops.FileOps
}

// Open finds the repository containing path, searching parent directories
func Open(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.ErrEmptyPath
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.WrapVCSError("open repository", notRepository(path)).
				WithContext("path", path).
				WithSuggestions("run testgen from inside a git repository or set git.repository")
		}
		return nil, errors.WrapVCSError("open repository", err).WithContext("path", path)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapVCSError("open worktree", err).
			WithContext("path", path).
			WithSuggestions("bare repositories have no working copy to generate tests in")
	}

	logger.Debugw("Opened repository",
		"path", path,
		"root", worktree.Filesystem.Root())

	return &Repository{
		repo:       repo,
		worktree:   worktree,
		root:       worktree.Filesystem.Root(),
		extensions: utils.DefaultExtensions,
		files:      fileops.NewFileOps(),
	}, nil
}

// notRepository annotates the sentinel with the path that was searched
func notRepository(path string) error {
	return errors.WithHintf(errors.ErrNotRepository, "no .git directory found at or above %s", path)
}

// Root returns the absolute worktree root
func (r *Repository) Root() string {
	return r.root
}

// SetExtensions replaces the module extensions used to filter results
func (r *Repository) SetExtensions(extensions []string) {
	if len(extensions) == 0 {
		extensions = utils.DefaultExtensions
	}
	r.extensions = extensions
}

// ChangedFiles lists modules that differ between ref and the working copy:
// committed changes since ref plus staged and unstaged edits. Untracked and
// deleted files are left out.
func (r *Repository) ChangedFiles(ref string) ([]string, error) {
	changes, err := r.diffSince(ref)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, errors.WrapVCSError("inspect change", err)
		}
		if action == merkletrie.Delete {
			continue
		}
		names[change.To.Name] = true
	}

	status, err := r.status()
	if err != nil {
		return nil, err
	}
	for name, fileStatus := range status {
		if fileStatus.Worktree == git.Untracked {
			continue
		}
		names[name] = true
	}

	files := r.modules(names)
	logger.Debugw("Changed files since revision",
		"ref", compareRef(ref),
		"count", len(files))
	return files, nil
}

// NewFiles lists modules added since ref, committed or staged
func (r *Repository) NewFiles(ref string) ([]string, error) {
	changes, err := r.diffSince(ref)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, errors.WrapVCSError("inspect change", err)
		}
		if action == merkletrie.Insert {
			names[change.To.Name] = true
		}
	}

	status, err := r.status()
	if err != nil {
		return nil, err
	}
	for name, fileStatus := range status {
		if fileStatus.Staging == git.Added {
			names[name] = true
		}
	}

	files := r.modules(names)
	logger.Debugw("New files since revision",
		"ref", compareRef(ref),
		"count", len(files))
	return files, nil
}

// IsClean reports whether the working copy has no changes, untracked files included
func (r *Repository) IsClean() (bool, error) {
	status, err := r.status()
	if err != nil {
		return false, err
	}
	return status.IsClean(), nil
}

// StageTestFiles stages every untracked or modified test file under dir and
// returns the staged absolute paths in sorted order
func (r *Repository) StageTestFiles(dir string) ([]string, error) {
	absDir, err := r.files.AbsolutePath(dir)
	if err != nil {
		return nil, errors.WrapVCSError("resolve directory", err).WithContext("path", dir)
	}

	status, err := r.status()
	if err != nil {
		return nil, err
	}

	var staged []string
	for name, fileStatus := range status {
		if fileStatus.Worktree != git.Untracked && fileStatus.Worktree != git.Modified {
			continue
		}

		path := r.absolute(name)
		if !isWithin(absDir, path) || !r.isStageableTest(path) {
			continue
		}

		if _, err := r.worktree.Add(name); err != nil {
			return staged, errors.WrapVCSError("stage "+name, err).WithContext("path", path)
		}
		staged = append(staged, path)
	}

	sort.Strings(staged)
	logger.Debugw("Staged test files",
		"dir", absDir,
		"count", len(staged))
	return staged, nil
}

// diffSince returns the tree changes between ref and HEAD
func (r *Repository) diffSince(ref string) (object.Changes, error) {
	ref = compareRef(ref)

	fromTree, err := r.treeAt(ref)
	if err != nil {
		return nil, err
	}
	headTree, err := r.treeAt("HEAD")
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(fromTree, headTree)
	if err != nil {
		return nil, errors.WrapVCSError("diff trees", err).WithContext("ref", ref)
	}
	return changes, nil
}

func (r *Repository) treeAt(ref string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, errors.WrapVCSError("resolve revision", err).
			WithContext("ref", ref).
			WithSuggestions("check the revision passed with --compare exists, e.g. HEAD~1 or main")
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.WrapVCSError("load commit", err).WithContext("ref", ref)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.WrapVCSError("load tree", err).WithContext("ref", ref)
	}
	return tree, nil
}

func (r *Repository) status() (git.Status, error) {
	status, err := r.worktree.Status()
	if err != nil {
		return nil, errors.WrapVCSError("read worktree status", err)
	}
	return status, nil
}

// modules converts repository-relative names into sorted absolute module paths
// that still exist in the working copy
func (r *Repository) modules(names map[string]bool) []string {
	files := make([]string, 0, len(names))
	for name := range names {
		path := r.absolute(name)
		if !utils.IsModuleFile(path, r.extensions) {
			continue
		}
		if !r.files.IsFile(path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

func (r *Repository) absolute(name string) string {
	return filepath.Join(r.root, filepath.FromSlash(name))
}

func (r *Repository) isStageableTest(path string) bool {
	if !strings.Contains(filepath.Base(path), ".test.") {
		return false
	}
	ext := filepath.Ext(path)
	return ext == generatedTestExtension || utils.HasExtension(path, r.extensions)
}

func compareRef(ref string) string {
	if ref == "" {
		return DefaultCompareRef
	}
	return ref
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
